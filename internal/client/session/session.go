// Package session guarda la sesión de la consola: token, tipo de usuario y cédula.
// Los tres valores se escriben y se borran juntos.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session estado de autenticación de la consola.
type Session struct {
	Token    string `json:"token"`
	UserType string `json:"userType,omitempty"`
	Cedula   string `json:"cedula,omitempty"`
}

// Empty indica si no hay sesión.
func (s Session) Empty() bool {
	return s == Session{}
}

// Store persistencia de la sesión.
type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// FileStore guarda la sesión como un único registro JSON en disco.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore construye el store sobre path; el directorio se crea al guardar.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del archivo de sesión.
func (f *FileStore) Path() string {
	return f.path
}

// Load lee la sesión. Un archivo inexistente es una sesión vacía.
func (f *FileStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("leer sesión: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decodificar sesión: %w", err)
	}
	return s, nil
}

// Save reemplaza la sesión completa. Escribe a un temporal y renombra para no dejar
// un archivo a medias.
func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s.Empty() {
		return f.removeLocked()
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("crear directorio de sesión: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir sesión: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Clear borra la sesión. Borrar una sesión inexistente no es error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeLocked()
}

func (f *FileStore) removeLocked() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}

// MemoryStore sesión en memoria, para pruebas y ejecuciones efímeras.
type MemoryStore struct {
	mu sync.Mutex
	s  Session
}

// NewMemoryStore construye el store con una sesión inicial opcional.
func NewMemoryStore(initial ...Session) *MemoryStore {
	m := &MemoryStore{}
	if len(initial) > 0 {
		m.s = initial[0]
	}
	return m
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
	return nil
}
