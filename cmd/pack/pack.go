package pack

import (
	"io"
	"os"
	"time"

	"github.com/ValentinKolb/dBin/lib/archive"
	"github.com/ValentinKolb/dBin/lib/collections"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/pkg/errors"
)

var plog = logger.GetLogger("cli")

// packEnv parses the dotenv file at src and writes it as an archive to dst
func packEnv(src string, dst io.Writer, compression archive.Compression) (manifest, error) {
	env, err := godotenv.Read(src)
	if err != nil {
		return manifest{}, errors.Wrapf(err, "failed to parse %s", src)
	}

	entries := collections.NewOrderedMap[string, string]()
	for k, v := range env {
		entries.Put(k, v)
	}

	m := manifest{
		Source:  src,
		Created: time.Now().Unix(),
		Entries: uint64(entries.Len()),
	}

	w, err := archive.NewWriter(dst, archive.Options{Compression: compression})
	if err != nil {
		return manifest{}, err
	}
	if err := archive.WriteWith(w, m, manifestCodec); err != nil {
		return manifest{}, errors.Wrap(err, "failed to write manifest")
	}
	if err := archive.WriteWith(w, entries, entriesCodec); err != nil {
		return manifest{}, errors.Wrap(err, "failed to write entries")
	}
	if err := w.Close(); err != nil {
		return manifest{}, err
	}

	plog.Infof("packed %d entries from %s (%d payload bytes, %s)", m.Entries, src, w.Written(), compression)
	return m, nil
}

// unpackEnv reads an archive written by packEnv
func unpackEnv(src io.Reader) (manifest, *collections.OrderedMap[string, string], error) {
	r, err := archive.NewReader(src)
	if err != nil {
		return manifest{}, nil, err
	}
	defer r.Close()

	var (
		m       manifest
		entries *collections.OrderedMap[string, string]
	)
	if err := archive.ReadWith(r, &m, manifestCodec); err != nil {
		return manifest{}, nil, errors.Wrap(err, "failed to read manifest")
	}
	if err := archive.ReadWith(r, &entries, entriesCodec); err != nil {
		return manifest{}, nil, errors.Wrap(err, "failed to read entries")
	}
	if uint64(entries.Len()) != m.Entries {
		plog.Warningf("manifest announces %d entries, archive holds %d", m.Entries, entries.Len())
	}
	return m, entries, nil
}

// formatEnv renders entries in dotenv syntax, one sorted KEY="value" line each
func formatEnv(entries *collections.OrderedMap[string, string]) (string, error) {
	env := make(map[string]string, entries.Len())
	for k, v := range entries.All() {
		env[k] = v
	}
	return godotenv.Marshal(env)
}

func createFile(path string) (*os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", path)
	}
	return file, nil
}
