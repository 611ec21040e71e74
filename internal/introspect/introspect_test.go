package introspect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockbind/internal/ir"
	"github.com/roach88/blockbind/internal/testutil"
)

const squareHeader = `namespace gr {
  namespace howto {
    /*!
     * \brief square a stream (make it sound)
     */
    class HOWTO_API square_ff : virtual public gr::sync_block
    {
     public:
      typedef boost::shared_ptr<square_ff> sptr;
      // static sptr make(float ignored);
      static sptr make(int threshold = 10);
    };
  }
}
`

const squareSource = `#include "square_ff_impl.h"

namespace gr {
  namespace howto {
    square_ff::sptr
    square_ff::make(int threshold)
    {
      return gnuradio::get_initial_sptr(new square_ff_impl(threshold));
    }

    square_ff_impl::square_ff_impl(int threshold)
      : gr::sync_block("square_ff",
              gr::io_signature::make(1, 1, sizeof(float)),
              gr::io_signature::make(1, 1, sizeof(float)))
    {}
  }
}
`

const legacyHeader = `
class HOWTO_API howto_square_ff;
typedef boost::shared_ptr<howto_square_ff> howto_square_ff_sptr;
HOWTO_API howto_square_ff_sptr howto_make_square_ff (float k = 2.0);
`

func TestBlockName(t *testing.T) {
	cases := []struct {
		path, module, block, header string
	}{
		{"lib/square_ff_impl.cc", "howto", "square_ff", "square_ff.h"},
		{"lib/howto_square_ff.cc", "howto", "square_ff", "howto_square_ff.h"},
		{"lib/square_ff.cc", "howto", "square_ff", "square_ff.h"},
		{"lib/square_ff_impl.cc", "", "square_ff", "square_ff.h"},
		{"lib/my_howto_filter_impl.cc", "howto", "my_howto_filter", "my_howto_filter.h"},
	}
	for _, tc := range cases {
		block, header := BlockName(tc.path, tc.module)
		assert.Equal(t, tc.block, block, tc.path)
		assert.Equal(t, tc.header, header, tc.path)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Num taps", DisplayName("num_taps"))
	assert.Equal(t, "Threshold", DisplayName("threshold"))
	assert.Equal(t, "", DisplayName(""))
}

func TestExtract_OneParameterFixedSignature(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"lib/square_ff_impl.cc":     squareSource,
		"include/howto/square_ff.h": squareHeader,
	})

	params, sig, err := Extract(
		filepath.Join(root, "lib/square_ff_impl.cc"),
		filepath.Join(root, "include/howto/square_ff.h"),
		"square_ff",
	)
	require.NoError(t, err)

	assert.Equal(t, []ir.Parameter{{
		Key:           "threshold",
		Type:          ir.TypeInt,
		Name:          "Threshold",
		Default:       "10",
		InConstructor: true,
		SourceType:    "int",
	}}, params)

	scalarFloat := []ir.Port{{Type: ir.TypeFloat, VectorLength: "1"}}
	assert.Equal(t, ir.PortSignature{
		Inputs:  ir.PortSpec{Min: ir.Fixed(1), Max: ir.Fixed(1), Ports: scalarFloat},
		Outputs: ir.PortSpec{Min: ir.Fixed(1), Max: ir.Fixed(1), Ports: scalarFloat},
	}, sig)
}

func TestParseParams_Types(t *testing.T) {
	params, err := parseParams(`const std::vector<gr_complex> &taps,
		int mask = 0xFF,
		const std::string& name = "a,b",
		unsigned char c = 'x',
		double gain=1.5,
		my::custom_t thing`)
	require.NoError(t, err)
	require.Len(t, params, 6)

	assert.Equal(t, "taps", params[0].Key)
	assert.Equal(t, ir.TypeComplexVector, params[0].Type)
	assert.False(t, params[0].HasDefault())

	assert.Equal(t, ir.TypeHex, params[1].Type)
	assert.Equal(t, "0xFF", params[1].Default)

	assert.Equal(t, "name", params[2].Key)
	assert.Equal(t, ir.TypeString, params[2].Type)
	assert.Equal(t, `"a,b"`, params[2].Default)

	assert.Equal(t, ir.TypeByte, params[3].Type)
	assert.Equal(t, "unsigned char", params[3].SourceType)

	assert.Equal(t, ir.TypeReal, params[4].Type)
	assert.Equal(t, "1.5", params[4].Default)

	assert.Equal(t, ir.TypeRaw, params[5].Type)
	assert.Equal(t, "my::custom_t", params[5].SourceType)
}

func TestParseParams_OperatorsInDefaults(t *testing.T) {
	cases := []struct {
		list     string
		keys     []string
		defaults []string
	}{
		{"int shift = 1 << 4, float gain = 1.0", []string{"shift", "gain"}, []string{"1 << 4", "1.0"}},
		{"int lim = 1<<4, int n", []string{"lim", "n"}, []string{"1<<4", ""}},
		{"bool on = 3 > 2, int k = 0", []string{"on", "k"}, []string{"3 > 2", "0"}},
		{"bool small = 2 <= 3, int k = 0", []string{"small", "k"}, []string{"2 <= 3", "0"}},
		{"std::vector<int> v = std::vector<int>(2, 0), int k", []string{"v", "k"}, []string{"std::vector<int>(2, 0)", ""}},
	}
	for _, tc := range cases {
		params, err := parseParams(tc.list)
		require.NoError(t, err, tc.list)
		require.Len(t, params, len(tc.keys), tc.list)
		for i, p := range params {
			assert.Equal(t, tc.keys[i], p.Key, tc.list)
			assert.Equal(t, tc.defaults[i], p.Default, tc.list)
		}
	}
}

func TestParseParams_Empty(t *testing.T) {
	params, err := parseParams("")
	require.NoError(t, err)
	assert.Empty(t, params)

	params, err = parseParams(" void ")
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParseIOSignature_UnboundedAndMultiPort(t *testing.T) {
	sig, err := parseIOSignature(`
		: gr::block("mux",
			gr::io_signature::make(1, -1, sizeof(gr_complex) * vlen),
			gr::io_signature::make2(2, 2, sizeof(float), sizeof (char)))`)
	require.NoError(t, err)

	assert.Equal(t, ir.Fixed(1), sig.Inputs.Min)
	assert.True(t, sig.Inputs.Max.IsUnbounded())
	assert.Equal(t, []ir.Port{{Type: ir.TypeComplex, VectorLength: "vlen"}}, sig.Inputs.Ports)

	assert.Equal(t, ir.Fixed(2), sig.Outputs.Max)
	assert.Equal(t, []ir.TypeTag{ir.TypeFloat, ir.TypeByte}, sig.Outputs.Types())
}

func TestParseIOSignature_NoPorts(t *testing.T) {
	sig, err := parseIOSignature(`gr::io_signature::make(0, 0, 0), io_signature::make(1, 1, 4)`)
	require.NoError(t, err)

	assert.Empty(t, sig.Inputs.Ports)
	assert.Equal(t, []ir.Port{{Type: ir.TypeByte, VectorLength: "4"}}, sig.Outputs.Ports)
}

func TestParseIOSignature_Makev(t *testing.T) {
	_, err := parseIOSignature(`gr::io_signature::makev(1, 2, sizes), gr::io_signature::make(1, 1, sizeof(float))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "makev")
}

func TestExtract_LegacyFactory(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"lib/howto_square_ff.cc":    squareSource,
		"include/howto_square_ff.h": legacyHeader,
	})

	params, _, err := Extract(
		filepath.Join(root, "lib/howto_square_ff.cc"),
		filepath.Join(root, "include/howto_square_ff.h"),
		"square_ff",
	)
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "k", params[0].Key)
	assert.Equal(t, ir.TypeFloat, params[0].Type)
	assert.Equal(t, "2.0", params[0].Default)
}

func TestExtract_MissingFile(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"lib/a_impl.cc": squareSource})

	_, _, err := Extract(filepath.Join(root, "lib/a_impl.cc"), filepath.Join(root, "include/a.h"), "a")
	require.Error(t, err)

	var ioErr *IOAccessError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, filepath.Join(root, "include/a.h"), ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtract_NoFactory(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a_impl.cc": squareSource,
		"a.h":       "class A {};\n",
	})

	_, _, err := Extract(filepath.Join(root, "a_impl.cc"), filepath.Join(root, "a.h"), "a")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, filepath.Join(root, "a.h"), parseErr.Path)
}

func TestExtractDescriptor(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a_impl.cc": squareSource,
		"a.h":       squareHeader,
	})

	d, err := ExtractDescriptor("howto", "square_ff", filepath.Join(root, "a_impl.cc"), filepath.Join(root, "a.h"))
	require.NoError(t, err)
	assert.Equal(t, "howto_square_ff", d.ID())
	assert.Len(t, d.Params, 1)
}

func TestStripComments_KeepsOffsets(t *testing.T) {
	in := "a /* x\ny */ b // c\nd \"// not a comment\""
	out := stripComments(in)
	assert.Len(t, out, len(in))
	assert.Equal(t, "a     \n     b     \nd \"// not a comment\"", out)
}
