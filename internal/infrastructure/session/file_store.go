// Package session guarda la sesión del cliente en disco: el token y el usuario serializado,
// igual que las dos claves del storage del navegador.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/jwt"
)

var _ repository.SessionStore = (*FileStore)(nil)

// fileFormat user es un string con el JSON del usuario.
type fileFormat struct {
	Token string `json:"token"`
	User  string `json:"user,omitempty"`
}

// FileStore sesión persistida en un archivo JSON con permisos 0600.
type FileStore struct {
	path string

	mu      sync.Mutex
	loaded  bool
	cur     entity.Session
	userErr error
}

// NewFileStore no toca el disco hasta el primer uso.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del archivo.
func (s *FileStore) Path() string { return s.path }

// Load lee la sesión. Sin archivo devuelve una sesión vacía sin error.
// Un usuario ilegible se descarta y se conserva el token.
func (s *FileStore) Load() (entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return entity.Session{}, err
	}
	return s.cur, nil
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.cur, s.loaded = entity.Session{}, true
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: leer %s: %w", s.path, err)
	}
	var f fileFormat
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("session: archivo corrupto %s: %w", s.path, err)
	}
	sess := entity.Session{Token: f.Token}
	s.userErr = nil
	if f.User != "" {
		if err := json.Unmarshal([]byte(f.User), &sess.User); err != nil {
			// usuario descartado; el token sigue siendo válido
			sess.User = entity.User{}
			s.userErr = fmt.Errorf("session: usuario ilegible en %s: %w", s.path, err)
		}
	}
	s.cur, s.loaded = sess, true
	return nil
}

// UserError error al decodificar el usuario en la última lectura del archivo, o nil.
func (s *FileStore) UserError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}
	return s.userErr
}

// Save reemplaza la sesión. Crea el directorio si no existe.
func (s *FileStore) Save(sess entity.Session) error {
	sess.User.Password = ""
	u, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("session: serializar usuario: %w", err)
	}
	b, err := json.MarshalIndent(fileFormat{Token: sess.Token, User: string(u)}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("session: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: escribir: %w", err)
	}
	s.cur, s.loaded, s.userErr = sess, true, nil
	return nil
}

// Clear borra el archivo. Borrar una sesión inexistente no es error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur, s.loaded, s.userErr = entity.Session{}, true, nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: borrar %s: %w", s.path, err)
	}
	return nil
}

// Token token actual o "". Un archivo ilegible cuenta como sin sesión.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return ""
	}
	return s.cur.Token
}

// ExpiresAt lee el exp del token sin verificar la firma. ok=false si no hay token o no es un JWT.
func (s *FileStore) ExpiresAt() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}
	return jwt.PeekExpiry(tok)
}

// Memory SessionStore en memoria (tests y procesos sin archivo de sesión).
type Memory struct {
	mu  sync.Mutex
	cur entity.Session
}

var _ repository.SessionStore = (*Memory)(nil)

func NewMemory(initial entity.Session) *Memory { return &Memory{cur: initial} }

func (m *Memory) Load() (entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur, nil
}

func (m *Memory) Save(sess entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = sess
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = entity.Session{}
	return nil
}

func (m *Memory) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Token
}
