package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/strandworks/lumibot/pkg/log"
)

// Catalog holds the externalized texts and file references. Texts are
// Markdown templates with an optional {name} placeholder; editing the JSON
// and triggering a reload changes the bot's wording without a restart.
type Catalog struct {
	mu        sync.RWMutex
	textsPath string
	filesPath string
	texts     map[string]string
	files     map[string]string
}

func NewCatalog(textsPath, filesPath string) *Catalog {
	return &Catalog{
		textsPath: textsPath,
		filesPath: filesPath,
		texts:     make(map[string]string),
		files:     make(map[string]string),
	}
}

// Load reads both JSON files, replacing the in-memory maps atomically.
// A missing file is not an error: the catalog falls back to keys.
func (c *Catalog) Load(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	texts, err := loadStringMap(c.textsPath)
	if err != nil {
		return fmt.Errorf("failed to load texts: %w", err)
	}
	files, err := loadStringMap(c.filesPath)
	if err != nil {
		return fmt.Errorf("failed to load files: %w", err)
	}

	c.mu.Lock()
	c.texts = texts
	c.files = files
	c.mu.Unlock()

	logger.Info().Int("texts", len(texts)).Int("files", len(files)).Msg("content catalog loaded")
	return nil
}

// Text returns the template for key, falling back to the key itself so a
// missing entry is visible in the chat instead of silently dropped.
func (c *Catalog) Text(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.texts[key]; ok {
		return t
	}
	return key
}

// Format renders the template for key with the {name} placeholder filled in.
func (c *Catalog) Format(key, name string) string {
	return strings.ReplaceAll(c.Text(key), "{name}", name)
}

// Button returns the caption for a menu button, keyed as "btn_<key>".
func (c *Catalog) Button(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.texts["btn_"+key]; ok {
		return t
	}
	return key
}

// File returns the asset path registered for key.
func (c *Catalog) File(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.files[key]
	return path, ok
}

func loadStringMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	m := make(map[string]string)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}
