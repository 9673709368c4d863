package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemblyError_Error_IncludesCategorySeverityAndCause(t *testing.T) {
	err := Wrap(fs.ErrNotExist, CategoryFilesystem, SeverityError, "read layout")
	require.Equal(t, "filesystem (error): read layout: file does not exist", err.Error())
}

func TestAssemblyError_Error_WithoutCause(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "no config")
	require.Equal(t, "config (fatal): no config", err.Error())
}

func TestAssemblyError_Unwrap_ExposesCause(t *testing.T) {
	err := Wrap(fs.ErrNotExist, CategoryFilesystem, SeverityError, "read layout")
	require.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestParse_AttachesPath(t *testing.T) {
	err := Parse("src/materials/bad.html", stderrors.New("boom"))
	require.Equal(t, CategoryParse, err.Category)
	require.Equal(t, "src/materials/bad.html", err.Context["path"])
	require.Contains(t, err.Error(), "src/materials/bad.html")
}

func TestCollision_NamesBothPaths(t *testing.T) {
	err := Collision("primary", "a/01-primary.html", "a/02-primary.html")
	require.Equal(t, CategoryClassify, err.Category)
	require.Contains(t, err.Error(), "a/01-primary.html")
	require.Contains(t, err.Error(), "a/02-primary.html")
	require.Equal(t, "primary", err.Context["fragment"])
}

func TestEmptyID_NamesPath(t *testing.T) {
	err := EmptyID("src/materials/buttons/01__.html")
	require.Equal(t, CategoryClassify, err.Category)
	require.Contains(t, err.Error(), "src/materials/buttons/01__.html")
	require.Equal(t, "src/materials/buttons/01__.html", err.Context["path"])
}

func TestGetCategory_PlainError_DefaultsToInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	require.Equal(t, CategoryRender, GetCategory(New(CategoryRender, SeverityError, "x")))
}

func TestIsCategory_MatchesOnlyOwnCategory(t *testing.T) {
	err := New(CategoryExport, SeverityWarning, "x")
	require.True(t, IsCategory(err, CategoryExport))
	require.False(t, IsCategory(err, CategoryRender))
	require.False(t, IsCategory(stderrors.New("plain"), CategoryExport))
}

func TestHandle_Callback_Fires(t *testing.T) {
	var got error
	fired := Handle(stderrors.New("boom"), func(err error) { got = err }, false)
	require.True(t, fired)
	require.EqualError(t, got, "boom")
}

func TestHandle_LogOnly_Fires(t *testing.T) {
	require.True(t, Handle(stderrors.New("boom"), nil, true))
}

func TestHandle_NoChannels_DoesNotFire(t *testing.T) {
	require.False(t, Handle(stderrors.New("boom"), nil, false))
}

func TestHandle_NilError_NothingToReport(t *testing.T) {
	require.True(t, Handle(nil, nil, false))
}
