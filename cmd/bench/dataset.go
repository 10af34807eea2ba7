package bench

import (
	"fmt"
	"math/rand/v2"

	"github.com/ValentinKolb/dBin/lib/codec"
)

// reading is one measurement of a sensor
type reading struct {
	At    int64
	Value float64
	Flags [4]uint8
}

// sensor is the record type the benchmark serializes. It owns its binary form, gob
// and json see the exported fields.
type sensor struct {
	ID       uint64
	Name     string
	Labels   map[string]string
	Readings []reading
	Position [3]float32
}

var (
	readingCodec  = codec.MustPrimitive[reading]()
	readingsCodec = codec.Slice(readingCodec)
	labelsCodec   = codec.Map(codec.String, codec.String)
	positionCodec = codec.MustPrimitive[[3]float32]()
	datasetCodec  = codec.Slice(codec.Delegated[sensor]())
)

func (s sensor) EncodeBinary(w *codec.BinWriter) {
	codec.Uint64.Encode(w, s.ID)
	codec.String.Encode(w, s.Name)
	labelsCodec.Encode(w, s.Labels)
	readingsCodec.Encode(w, s.Readings)
	positionCodec.Encode(w, s.Position)
}

func (s *sensor) DecodeBinary(r *codec.BinReader) {
	codec.Uint64.Decode(r, &s.ID)
	codec.String.Decode(r, &s.Name)
	labelsCodec.Decode(r, &s.Labels)
	readingsCodec.Decode(r, &s.Readings)
	positionCodec.Decode(r, &s.Position)
}

// generateDataset creates records sensors with readings measurements each. The
// generator is seeded so runs are comparable.
func generateDataset(records, readings int) []sensor {
	rng := rand.New(rand.NewPCG(42, uint64(records)))
	zones := []string{"north", "south", "east", "west"}

	dataset := make([]sensor, records)
	for i := range dataset {
		s := sensor{
			ID:   uint64(i),
			Name: fmt.Sprintf("sensor-%05d", i),
			Labels: map[string]string{
				"zone": zones[rng.IntN(len(zones))],
				"rack": fmt.Sprintf("r%d", rng.IntN(64)),
			},
			Readings: make([]reading, readings),
			Position: [3]float32{rng.Float32(), rng.Float32(), rng.Float32()},
		}
		for j := range s.Readings {
			s.Readings[j] = reading{
				At:    int64(1_700_000_000 + j*60),
				Value: rng.NormFloat64()*5 + 20,
				Flags: [4]uint8{uint8(rng.IntN(4))},
			}
		}
		dataset[i] = s
	}
	return dataset
}
