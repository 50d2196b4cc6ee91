package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	s, err := store.Load()
	require.NoError(t, err)
	assert.True(t, s.Empty(), "sin archivo no hay sesión")

	want := Session{Token: "abc.def.ghi", UserType: "Administrador", Cedula: "123"}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Otro store sobre el mismo archivo ve la misma sesión.
	got, err = NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	got, err = store.Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Clear(), "borrar dos veces no falla")
}

func TestFileStore_SaveReemplazaCompleta(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(Session{Token: "t1", UserType: "Administrador", Cedula: "1"}))
	require.NoError(t, store.Save(Session{Token: "t2"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{Token: "t2"}, got, "no quedan restos de la sesión anterior")

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Session{Token: "x"})
	s, _ := store.Load()
	assert.Equal(t, "x", s.Token)

	require.NoError(t, store.Clear())
	s, _ = store.Load()
	assert.True(t, s.Empty())
}
