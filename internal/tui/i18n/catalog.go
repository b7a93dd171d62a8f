package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// catalog maps dotted keys to translations of one locale.
type catalog map[string]string

// load reads locale from the embedded files, then from the directory set
// with WithDirectory. Loaded locales are kept.
func (i *I18n) load(locale string) error {
	if _, ok := i.catalogs[locale]; ok {
		return nil
	}

	name := locale + ".yaml"
	data, err := fs.ReadFile(embedded, "locales/"+name)
	if err != nil && i.dir != "" {
		data, err = fs.ReadFile(os.DirFS(i.dir), name)
	}
	if err != nil {
		return fmt.Errorf("failed to load locale %s: %w", locale, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to parse locale %s: %w", locale, err)
	}
	c := make(catalog)
	c.add("", tree)
	i.catalogs[locale] = c
	return nil
}

// add stores the leaves of tree under prefix, joining keys with dots.
func (c catalog) add(prefix string, tree map[string]any) {
	for k, v := range tree {
		if prefix != "" {
			k = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			c.add(k, v)
		case string:
			c[k] = v
		default:
			c[k] = fmt.Sprint(v)
		}
	}
}
