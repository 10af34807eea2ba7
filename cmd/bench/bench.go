package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ValentinKolb/dBin/lib/archive"
	"github.com/ValentinKolb/dBin/lib/serializer"
	"github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"
)

// result summarizes the timings of one serializer
type result struct {
	Serializer string
	Size       int
	Encode     gometrics.Timer
	Decode     gometrics.Timer
}

// runSerializer times iterations round trips of dataset through s. Every decoded
// dataset is checked for its length so a broken serializer cannot look fast.
func runSerializer(s serializer.ISerializer[[]sensor], dataset []sensor, iterations int, registry gometrics.Registry) (result, error) {
	res := result{
		Serializer: s.Name(),
		Encode:     gometrics.GetOrRegisterTimer(s.Name()+".encode", registry),
		Decode:     gometrics.GetOrRegisterTimer(s.Name()+".decode", registry),
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		data, err := s.Serialize(dataset)
		if err != nil {
			return res, errors.Wrapf(err, "%s: serialize", s.Name())
		}
		res.Encode.UpdateSince(start)
		res.Size = len(data)

		var decoded []sensor
		start = time.Now()
		if err := s.Deserialize(data, &decoded); err != nil {
			return res, errors.Wrapf(err, "%s: deserialize", s.Name())
		}
		res.Decode.UpdateSince(start)

		if len(decoded) != len(dataset) {
			return res, errors.Errorf("%s: decoded %d records, expected %d", s.Name(), len(decoded), len(dataset))
		}
	}
	return res, nil
}

// countingWriter counts the bytes written to it and discards them
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// archiveSize returns the size of dataset in an archive with compression c
func archiveSize(dataset []sensor, c archive.Compression) (int64, error) {
	cw := &countingWriter{}
	w, err := archive.NewWriter(cw, archive.Options{Compression: c})
	if err != nil {
		return 0, err
	}
	if err := archive.WriteWith(w, dataset, datasetCodec); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

// printResult prints the result of a serializer in a formatted way
func printResult(out io.Writer, r result) {
	enc, dec := r.Encode.Snapshot(), r.Decode.Snapshot()
	fmt.Fprintf(out, "%-8s%10d B   encode %12s (p99 %12s)   decode %12s (p99 %12s)\n",
		r.Serializer, r.Size,
		time.Duration(enc.Mean()), time.Duration(enc.Percentile(0.99)),
		time.Duration(dec.Mean()), time.Duration(dec.Percentile(0.99)))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []result, records, readings int) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Serializer", "SizeBytes", "Iterations",
		"EncodeMeanNs", "EncodeP50Ns", "EncodeP99Ns",
		"DecodeMeanNs", "DecodeP50Ns", "DecodeP99Ns",
		"Records", "ReadingsPerRecord",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, r := range results {
		enc, dec := r.Encode.Snapshot(), r.Decode.Snapshot()
		row := []string{
			r.Serializer,
			strconv.Itoa(r.Size),
			strconv.FormatInt(enc.Count(), 10),
			fmt.Sprintf("%.0f", enc.Mean()),
			fmt.Sprintf("%.0f", enc.Percentile(0.5)),
			fmt.Sprintf("%.0f", enc.Percentile(0.99)),
			fmt.Sprintf("%.0f", dec.Mean()),
			fmt.Sprintf("%.0f", dec.Percentile(0.5)),
			fmt.Sprintf("%.0f", dec.Percentile(0.99)),
			strconv.Itoa(records),
			strconv.Itoa(readings),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %v", r.Serializer, err)
		}
	}

	return writer.Error()
}
