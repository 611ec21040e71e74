package scaffold

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockbind/internal/testutil"
)

func TestDisabler_CommentsOutEntries(t *testing.T) {
	root, cfg := loadModule(t, moduleTree())
	cfg.Yes = true
	rec := &Recorder{}

	report, err := (&Disabler{Config: cfg, Pattern: "^square_ff", Tracker: rec}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count(StateDisabled))
	assert.Equal(t, "lib/square_ff_impl.cc", report.Results[0].Source)
	assert.Equal(t, "include/howto/square_ff.h", report.Results[1].Source)

	lib := testutil.ReadFile(t, root, "lib/CMakeLists.txt")
	assert.Contains(t, lib, "list(APPEND howto_sources\n    #square_ff_impl.cc\n    square2_ff_impl.cc\n)")
	assert.Equal(t, `install(FILES
    api.h
    #square_ff.h
    square2_ff.h DESTINATION include/howto
)
`, testutil.ReadFile(t, root, "include/howto/CMakeLists.txt"))

	assert.True(t, testutil.Exists(root, "lib/square_ff_impl.cc"), "disable keeps files")
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "lib", "CMakeLists.txt"),
		filepath.Join(root, "include", "howto", "CMakeLists.txt"),
	}, rec.Updated)
}

func TestDisabler_Idempotent(t *testing.T) {
	root, cfg := loadModule(t, moduleTree())
	cfg.Yes = true
	d := &Disabler{Config: cfg, Pattern: "^square_ff"}

	_, err := d.Run(context.Background())
	require.NoError(t, err)
	once := testutil.ReadFile(t, root, "lib/CMakeLists.txt")

	report, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, once, testutil.ReadFile(t, root, "lib/CMakeLists.txt"))
}

func TestDisabler_TestSources(t *testing.T) {
	root, cfg := loadModule(t, moduleTree())
	cfg.Yes = true

	report, err := (&Disabler{Config: cfg, Pattern: "qa_square_ff"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(StateDisabled))

	lib := testutil.ReadFile(t, root, "lib/CMakeLists.txt")
	assert.Contains(t, lib, "#    ${CMAKE_CURRENT_SOURCE_DIR}/qa_square_ff.cc\n")
	assert.Contains(t, lib, "\n    ${CMAKE_CURRENT_SOURCE_DIR}/test_howto.cc\n")

	py := testutil.ReadFile(t, root, "python/CMakeLists.txt")
	assert.Contains(t, py, "\n#GR_ADD_TEST(qa_square_ff ")
	assert.Contains(t, py, "\nGR_ADD_TEST(qa_square3_ff ")
}

func TestDisabler_PythonModuleAndDecline(t *testing.T) {
	root, cfg := loadModule(t, moduleTree())
	prompter := testutil.NewScriptedPrompter(true, false)

	report, err := (&Disabler{Config: cfg, Pattern: "square3", Prompter: prompter}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Really disable python/square3_ff.py?",
		"Really disable python/qa_square3_ff.py?",
	}, prompter.Questions())
	assert.Equal(t, 1, report.Count(StateDisabled))
	assert.Equal(t, 1, report.Count(StateDeclined))

	assert.Contains(t, testutil.ReadFile(t, root, "python/__init__.py"), "\n#from .square3_ff import square3_ff\n")
	py := testutil.ReadFile(t, root, "python/CMakeLists.txt")
	assert.Contains(t, py, "    #square3_ff.py\n    DESTINATION ${GR_PYTHON_DIR}/howto\n)")
	assert.Contains(t, py, "\nGR_ADD_TEST(qa_square3_ff ")
}

func TestDisabler_QuitKeepsEarlierEdits(t *testing.T) {
	root, cfg := loadModule(t, moduleTree())
	prompter := testutil.NewScriptedPrompter()
	prompter.FailWith(ErrQuit)

	report, err := (&Disabler{Config: cfg, Pattern: "square", Prompter: prompter}).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.Len(t, prompter.Questions(), 1)
	assert.Equal(t, libManifest, testutil.ReadFile(t, root, "lib/CMakeLists.txt"))
}

func TestDisabler_MissingManifestsAreSkipped(t *testing.T) {
	files := moduleTree()
	delete(files, "include/howto/CMakeLists.txt")
	delete(files, "grc/CMakeLists.txt")
	_, cfg := loadModule(t, files)
	cfg.Yes = true

	report, err := (&Disabler{Config: cfg, Pattern: "square2"}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "lib/square2_ff_impl.cc", report.Results[0].Source)
}
