package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
)

//go:embed *.json
var fs embed.FS

// translations stores flattened keys: "tr" -> "updates.due_today" -> "Bugün güncellenmeli"
var (
	translations = make(map[string]map[string]string)
	mutex        sync.RWMutex
	defaultLang  = "tr"

	loadOnce sync.Once
	loadErr  error
)

// Supported lists the languages shipped in the embedded locale files.
var Supported = []string{"tr", "en"}

// IsSupported reports whether lang has an embedded locale file.
func IsSupported(lang string) bool {
	for _, l := range Supported {
		if l == lang {
			return true
		}
	}
	return false
}

// SetDefault changes the fallback language. Unsupported values are ignored.
func SetDefault(lang string) {
	if !IsSupported(lang) {
		log.Printf("[WARNING] Unsupported default language %q, keeping %q", lang, Default())
		return
	}
	mutex.Lock()
	defaultLang = lang
	mutex.Unlock()
}

// Default returns the fallback language.
func Default() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return defaultLang
}

// Load initializes the translations from the embedded JSON files.
// It is safe to call more than once; the files are only parsed the first time.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load()
	})
	return loadErr
}

func load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			lang := strings.TrimSuffix(entry.Name(), ".json")
			content, err := fs.ReadFile(entry.Name())
			if err != nil {
				return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
			}

			var result map[string]interface{}
			if err := json.Unmarshal(content, &result); err != nil {
				return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
			}

			flat := make(map[string]string)
			flatten("", result, flat)
			translations[lang] = flat
			log.Printf("Loaded locale: %s (%d keys)", lang, len(flat))
		}
	}

	return nil
}

// flatten recursively flattens a nested map into dot-notation keys.
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		newKey := k
		if prefix != "" {
			newKey = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(newKey, child, result)
		case string:
			result[newKey] = child
		default:
			result[newKey] = fmt.Sprintf("%v", child)
		}
	}
}

// T retrieves a translation for the given key using the language from the context.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	lang := GetLocale(ctx)
	return Translate(lang, key, args...)
}

// Translate retrieves a translation for a specific language code.
// Missing keys fall back to the default language, and then to the key itself.
// Supports simple named variable replacement {name} if args are provided.
func Translate(lang, key string, args ...map[string]interface{}) string {
	if err := Load(); err != nil {
		log.Printf("[WARNING] Translations unavailable: %v", err)
	}

	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}

	if lang != defaultLang {
		if trans, ok := translations[defaultLang]; ok {
			if val, ok := trans[key]; ok {
				return format(val, args...)
			}
		}
	}

	return key
}

// format replaces {var} placeholders with values from args if present.
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}

	vars := args[0]
	for k, v := range vars {
		placeholder := "{" + k + "}"
		valStr := fmt.Sprintf("%v", v)
		text = strings.ReplaceAll(text, placeholder, valStr)
	}
	return text
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// GetLocale extracts the locale from the context (set by middleware.Locale),
// defaulting to the configured default language.
func GetLocale(ctx context.Context) string {
	if val := ctx.Value(LocaleContextKey); val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return Default()
}
