package codec_test

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/ValentinKolb/dBin/lib/codec"
	codectesting "github.com/ValentinKolb/dBin/lib/codec/testing"
	"github.com/ValentinKolb/dBin/lib/collections"
)

// record is a delegated type composed from built-in codecs
type record struct {
	ID    uint64
	Name  string
	Tags  []string
	Attrs map[string]int64
}

var (
	tagsCodec  = codec.Slice(codec.String)
	attrsCodec = codec.Map(codec.String, codec.Int64)
)

func (r record) EncodeBinary(w *codec.BinWriter) {
	codec.Uint64.Encode(w, r.ID)
	codec.String.Encode(w, r.Name)
	tagsCodec.Encode(w, r.Tags)
	attrsCodec.Encode(w, r.Attrs)
}

func (r *record) DecodeBinary(br *codec.BinReader) {
	codec.Uint64.Decode(br, &r.ID)
	codec.String.Decode(br, &r.Name)
	tagsCodec.Decode(br, &r.Tags)
	attrsCodec.Decode(br, &r.Attrs)
}

func recordEqual(a, b record) bool {
	return a.ID == b.ID && a.Name == b.Name &&
		slices.Equal(a.Tags, b.Tags) &&
		len(a.Attrs) == len(b.Attrs) && (len(a.Attrs) == 0 || reflect.DeepEqual(a.Attrs, b.Attrs))
}

func TestPrimitiveCodecs(t *testing.T) {
	codectesting.RunCodecTests(t, "Int64", codec.Int64, []int64{0, 1, -1, math.MinInt64, math.MaxInt64}, nil)
	codectesting.RunCodecTests(t, "Uint16", codec.Uint16, []uint16{0, 1, math.MaxUint16}, nil)
	codectesting.RunCodecTests(t, "Float32", codec.Float32, []float32{0, -1.5, math.MaxFloat32}, nil)
	codectesting.RunCodecTests(t, "Bool", codec.Bool, []bool{true, false}, nil)
	codectesting.RunCodecTests(t, "Vec3", codec.MustPrimitive[[3]float64](), [][3]float64{{1, 2, 3}, {}}, nil)
}

func TestSequenceCodecs(t *testing.T) {
	codectesting.RunCodecTests(t, "String", codec.String, []string{"", "a", "hello, world", "ünïcödé"}, nil)
	codectesting.RunCodecTests(t, "Bytes", codec.Bytes, [][]byte{{}, {0}, {1, 2, 3, 255}}, nil)
	codectesting.RunCodecTests(t, "Int32Slice", codec.Slice(codec.Int32),
		[][]int32{{}, {3, 1, 4, 1, 5}, {math.MinInt32, math.MaxInt32}}, nil)
	codectesting.RunCodecTests(t, "NestedStrings", codec.Slice(codec.Slice(codec.String)),
		[][][]string{{}, {{}, {"a"}}, {{"x", "y"}, {"z"}}}, nil)
}

func TestAssociativeCodecs(t *testing.T) {
	codectesting.RunCodecTests(t, "Set", codec.Set(codec.Int32),
		[]map[int32]struct{}{{}, {1: {}, 2: {}, 3: {}}}, nil)
	codectesting.RunCodecTests(t, "Map", codec.Map(codec.String, codec.Int32),
		[]map[string]int32{{}, {"a": 1, "b": 2}, {"k": -1}}, nil)

	setEqual := func(a, b *collections.OrderedSet[string]) bool {
		return slices.Equal(slices.Collect(a.All()), slices.Collect(b.All()))
	}
	codectesting.RunCodecTests(t, "OrderedSet", codec.OrderedSet(codec.String),
		[]*collections.OrderedSet[string]{
			collections.NewOrderedSet[string](),
			collections.NewOrderedSet("b", "a", "c"),
		}, setEqual)

	multiSetEqual := func(a, b *collections.OrderedMultiSet[int8]) bool {
		return slices.Equal(slices.Collect(a.All()), slices.Collect(b.All()))
	}
	codectesting.RunCodecTests(t, "OrderedMultiSet", codec.OrderedMultiSet(codec.Int8),
		[]*collections.OrderedMultiSet[int8]{
			collections.NewOrderedMultiSet[int8](),
			collections.NewOrderedMultiSet[int8](5, 5, -1, 5),
		}, multiSetEqual)

	type kv struct {
		K string
		V uint32
	}
	pairs := func(seq func(yield func(string, uint32) bool)) []kv {
		var out []kv
		for k, v := range seq {
			out = append(out, kv{k, v})
		}
		return out
	}

	om := collections.NewOrderedMap[string, uint32]()
	om.Put("zeta", 26)
	om.Put("alpha", 1)
	codectesting.RunCodecTests(t, "OrderedMap", codec.OrderedMap(codec.String, codec.Uint32),
		[]*collections.OrderedMap[string, uint32]{collections.NewOrderedMap[string, uint32](), om},
		func(a, b *collections.OrderedMap[string, uint32]) bool {
			return slices.Equal(pairs(a.All()), pairs(b.All()))
		})

	omm := collections.NewOrderedMultiMap[string, uint32]()
	omm.Add("x", 1)
	omm.Add("x", 2)
	omm.Add("a", 3)
	codectesting.RunCodecTests(t, "OrderedMultiMap", codec.OrderedMultiMap(codec.String, codec.Uint32),
		[]*collections.OrderedMultiMap[string, uint32]{collections.NewOrderedMultiMap[string, uint32](), omm},
		func(a, b *collections.OrderedMultiMap[string, uint32]) bool {
			return slices.Equal(pairs(a.All()), pairs(b.All()))
		})
}

func TestFixedArityCodecs(t *testing.T) {
	codectesting.RunCodecTests(t, "StringTriple", codec.MustArray[[3]string](codec.String),
		[][3]string{{"", "", ""}, {"a", "bb", "ccc"}}, nil)
	codectesting.RunCodecTests(t, "SlicePair", codec.MustArray[[2][]uint8](codec.Bytes),
		[][2][]uint8{{{}, {}}, {{1}, {2, 3}}}, nil)
}

func TestDelegatedCodecs(t *testing.T) {
	samples := []record{
		{ID: 1, Name: "first", Tags: []string{}, Attrs: map[string]int64{}},
		{ID: math.MaxUint64, Name: "full", Tags: []string{"a", "b"}, Attrs: map[string]int64{"x": -1, "y": 2}},
	}
	codectesting.RunCodecTests(t, "Record", codec.Delegated[record](), samples, recordEqual)
	codectesting.RunCodecTests(t, "Records", codec.Slice(codec.Delegated[record]()), [][]record{{}, samples},
		func(a, b []record) bool { return slices.EqualFunc(a, b, recordEqual) })
}

func TestAliasCodecs(t *testing.T) {
	a, b := "referenced", ""
	refEqual := func(x, y codec.Ref[string]) bool { return *x.Get() == *y.Get() }

	c := codec.RefOf(codec.String)
	for _, s := range []codec.Ref[string]{codec.NewRef(&a), codec.NewRef(&b)} {
		data, err := codec.MarshalWith(s, c)
		if err != nil {
			t.Fatalf("Failed to encode: %v", err)
		}
		var storage string
		dst := codec.NewRef(&storage)
		if err := codec.UnmarshalWith(data, &dst, c); err != nil {
			t.Fatalf("Failed to decode: %v", err)
		}
		if !refEqual(s, dst) {
			t.Errorf("Expected %q, got %q", *s.Get(), storage)
		}
	}
}
