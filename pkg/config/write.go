package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/loaderkit/ruletree/pkg/errors"
	"github.com/loaderkit/ruletree/pkg/logging"
)

const defaultFileHeader = `# ruletree configuration
#
# Each [[rules]] entry routes matching resources to processors. Rules nest
# through "sequence" (ordered, all matching children apply) or "one_of"
# (first matching child wins). Phases: pre, normal (default), post.

`

// defaultTree is the starter configuration written by WriteDefault: two
// pre-phase rules followed by a first-match set with a catch-all tail
func defaultTree() ruleFile {
	return ruleFile{
		Rules: []fileRule{
			{
				Phase:     "pre",
				Processor: "lint",
				Resource:  &fileResource{Extensions: []string{".js", ".mjs"}},
			},
			{
				OneOf: []fileRule{
					{
						Processors: []string{"transpile", "minify"},
						Resource:   &fileResource{Extensions: []string{".js", ".mjs"}},
					},
					{
						Processor: "stylesheet",
						Resource:  &fileResource{Extensions: []string{".css"}},
					},
					{
						Processor: "image",
						Resource:  &fileResource{Extensions: []string{".png", ".jpg", ".svg"}},
					},
					{
						Processor: "copy",
						Resource:  &fileResource{},
					},
				},
			},
		},
	}
}

// WriteDefault writes a commented starter rule file to the given path. It
// refuses to overwrite an existing file.
func WriteDefault(path string) error {
	logger := logging.GetLogger("config")

	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrInvalidInput, "refusing to overwrite %s", path)
	}

	body, err := toml.Marshal(defaultTree())
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to render default rules")
	}

	content := append([]byte(defaultFileHeader), body...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to write rule file %s", path)
	}

	logger.Info().Str("path", path).Msg("wrote starter rule file")
	return nil
}
