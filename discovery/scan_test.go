// Copyright 2024 The allocator Authors. All rights reserved.

package discovery

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func withMemFs(t *testing.T, files map[string]string) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0o644))
	}
	prev := fs
	fs = mem
	t.Cleanup(func() { fs = prev })
}

func TestScanDirOrdersByFilename(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/drivers/b-driver.json": `{"format_version":"1.0","driver":{"name":"b","vendor":4181,"library_path":"/lib/b.so"}}`,
		"/etc/drivers/a-driver.json": `{"format_version":"1.0","driver":{"name":"a","vendor":4181,"library_path":"/lib/a.so"}}`,
		"/etc/drivers/readme.txt":    "not a config",
	})

	records, err := ScanDir("/etc/drivers")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "/lib/a.so", records[0].LibraryPath)
	require.Equal(t, "/lib/b.so", records[1].LibraryPath)
}

func TestScanDirMissingDirectoryIsNotAnError(t *testing.T) {
	withMemFs(t, nil)
	records, err := ScanDir("/does/not/exist")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestScanDirRejectsUnsupportedMajorVersion(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/drivers/future.json": `{"format_version":"2.0","driver":{"name":"x","library_path":"/lib/x.so"}}`,
	})
	_, err := ScanDir("/etc/drivers")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrFormatVersion)
}

func TestScanDirAcceptsOlderCompatibleMinorVersion(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/drivers/old.json": `{"format_version":"1","driver":{"name":"x","library_path":"/lib/x.so"}}`,
	})
	records, err := ScanDir("/etc/drivers")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestScanDirRejectsNewerMinorVersion(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/drivers/newer.json": `{"format_version":"1.99","driver":{"name":"x","library_path":"/lib/x.so"}}`,
	})
	_, err := ScanDir("/etc/drivers")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrFormatVersion)
}

func TestScanDirRejectsMissingLibraryPath(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/drivers/empty.json": `{"format_version":"1.0","driver":{"name":"x"}}`,
	})
	_, err := ScanDir("/etc/drivers")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestScanDirRejectsMissingName(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/drivers/noname.json": `{"format_version":"1.0","driver":{"library_path":"/lib/x.so"}}`,
	})
	_, err := ScanDir("/etc/drivers")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestScanDirsConcatenatesInOrder(t *testing.T) {
	withMemFs(t, map[string]string{
		"/etc/sys/a.json":  `{"format_version":"1.0","driver":{"name":"sys-a","library_path":"/lib/sys-a.so"}}`,
		"/home/usr/a.json": `{"format_version":"1.0","driver":{"name":"usr-a","library_path":"/lib/usr-a.so"}}`,
	})

	records, err := ScanDirs([]string{"/etc/sys", "/home/usr", "/not/configured"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "/lib/sys-a.so", records[0].LibraryPath)
	require.Equal(t, "/lib/usr-a.so", records[1].LibraryPath)
}
