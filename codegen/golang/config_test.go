package golang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseOptions(&cfg, []string{
		"name=Road",
		"entry=RoadView",
		"package=roads",
		"rename_methods=false",
		"unsafe=true",
		"mermaid=true",
	})
	require.NoError(t, err)
	require.Equal(t, "Road", cfg.Name)
	require.Equal(t, "RoadView", cfg.Entry)
	require.Equal(t, "roads", cfg.Package)
	require.False(t, cfg.RenameMethods)
	require.Equal(t, TrustTotal, cfg.Trust)
	require.True(t, cfg.Mermaid)
}

func TestParseOptionImports(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ParseOptions(&cfg, []string{"import=net/url", "import=time"}))
	require.Equal(t, []string{"net/url", "time"}, cfg.Imports)
}

func TestParseOptionPathToCore(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ParseOption(&cfg, "path_to_core", "myfsm"))
	require.Equal(t, "myfsm", cfg.Package)
}

func TestParseOptionErrors(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, ParseOption(&cfg, "colour", "blue"))
	require.Error(t, ParseOption(&cfg, "unsafe", "definitely"))
	require.Error(t, ParseOptions(&cfg, []string{"rename_methods"}))
}

func TestEntryNameDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "Road"
	require.Equal(t, "RoadEntry", cfg.entryName())
	cfg.Entry = "View"
	require.Equal(t, "View", cfg.entryName())
}

func TestTrustLevelString(t *testing.T) {
	require.Equal(t, "checked", TrustChecked.String())
	require.Equal(t, "total", TrustTotal.String())
}
