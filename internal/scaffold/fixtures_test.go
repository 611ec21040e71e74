package scaffold

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/blockbind/internal/config"
	"github.com/roach88/blockbind/internal/testutil"
)

const squareHeader = `namespace gr {
  namespace howto {
    class HOWTO_API square_ff : virtual public gr::sync_block
    {
     public:
      typedef boost::shared_ptr<square_ff> sptr;
      static sptr make(int threshold = 10);
    };
  }
}
`

const squareSource = `#include "square_ff_impl.h"

namespace gr {
  namespace howto {
    square_ff_impl::square_ff_impl(int threshold)
      : gr::sync_block("square_ff",
              gr::io_signature::make(1, 1, sizeof(float)),
              gr::io_signature::make(1, 1, sizeof(float)))
    {}
  }
}
`

const square2Header = `class HOWTO_API square2_ff : virtual public gr::sync_block
{
 public:
  static sptr make();
};
`

const square2Source = `square2_ff_impl::square2_ff_impl()
  : gr::sync_block("square2_ff",
          gr::io_signature::make(1, 1, sizeof(float)),
          gr::io_signature::make(1, 1, sizeof(float)))
{}
`

const libManifest = `list(APPEND howto_sources
    square_ff_impl.cc
    square2_ff_impl.cc
)

add_library(gnuradio-howto SHARED ${howto_sources})

list(APPEND test_howto_sources
    ${CMAKE_CURRENT_SOURCE_DIR}/test_howto.cc
    ${CMAKE_CURRENT_SOURCE_DIR}/qa_square_ff.cc
)

GR_ADD_TEST(test_howto test-howto)
`

const includeManifest = `install(FILES
    api.h
    square_ff.h
    square2_ff.h DESTINATION include/howto
)
`

const pythonManifest = `GR_PYTHON_INSTALL(
    FILES
    __init__.py
    square3_ff.py DESTINATION ${GR_PYTHON_DIR}/howto
)

include(GrTest)

GR_ADD_TEST(qa_square_ff ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/qa_square_ff.py)


GR_ADD_TEST(qa_square3_ff ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/qa_square3_ff.py)
`

const pythonInit = `from __future__ import unicode_literals

from .howto_swig import *
from .square3_ff import square3_ff
`

const grcManifest = `install(FILES DESTINATION share/gnuradio/grc/blocks
)
`

// moduleTree returns a complete gr-howto module.
func moduleTree() map[string]string {
	return map[string]string{
		"CMakeLists.txt":               "project(gr-howto CXX C)\n",
		"lib/CMakeLists.txt":           libManifest,
		"lib/square_ff_impl.cc":        squareSource,
		"lib/square2_ff_impl.cc":       square2Source,
		"lib/qa_square_ff.cc":          "// test\n",
		"include/howto/CMakeLists.txt": includeManifest,
		"include/howto/square_ff.h":    squareHeader,
		"include/howto/square2_ff.h":   square2Header,
		"python/CMakeLists.txt":        pythonManifest,
		"python/__init__.py":           pythonInit,
		"python/square3_ff.py":         "class square3_ff: pass\n",
		"python/qa_square_ff.py":       "# test\n",
		"python/qa_square3_ff.py":      "# test\n",
		"grc/CMakeLists.txt":           grcManifest,
	}
}

// loadModule writes files and loads their configuration.
func loadModule(t *testing.T, files map[string]string) (string, *config.Config) {
	t.Helper()

	root := testutil.WriteTree(t, files)
	cfg, err := config.Load(config.LoadOptions{Dir: root})
	require.NoError(t, err)
	return root, cfg
}
