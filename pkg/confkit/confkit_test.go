package confkit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/abs/file.yaml", confkit.ResolvePath("/base", "/abs/file.yaml"))
	assert.Equal(t, "/base/etc/file.yaml", confkit.ResolvePath("/base", "etc/file.yaml"))

	t.Setenv("CONF_DIR", "conf.d")
	assert.Equal(t, "/base/conf.d/file.yaml", confkit.ResolvePath("/base", "${CONF_DIR}/file.yaml"))
}

func TestSectionHydrateEmptyFile(t *testing.T) {
	section := &confkit.Section[string]{}
	err := section.Hydrate("/base", func(path string) (*string, error) {
		t.Fatal("loader must not run without a file")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Nil(t, section.Value)
}

func TestSectionHydrate(t *testing.T) {
	section := &confkit.Section[string]{File: "insight.yaml"}
	value := "loaded"

	err := section.Hydrate("/base", func(path string) (*string, error) {
		assert.Equal(t, "/base/insight.yaml", path)
		return &value, nil
	})
	require.NoError(t, err)
	require.NotNil(t, section.Value)
	assert.Equal(t, "loaded", *section.Value)
	assert.Equal(t, "/base/insight.yaml", section.File)
}

func TestSectionHydrateLoaderError(t *testing.T) {
	section := &confkit.Section[string]{File: "broken.yaml"}
	wantErr := errors.New("parse failure")

	err := section.Hydrate("/base", func(path string) (*string, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, section.Value)
}
