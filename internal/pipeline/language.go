package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// CanonicalLanguage maps a kernel or magic language name to the identifier
// used in fenced code annotations. Names chroma does not know are returned
// lowercased and otherwise unchanged.
//
//	python3 -> python
//	sh      -> bash
//	R       -> r
func CanonicalLanguage(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	lexer := lexers.Get(name)
	if lexer == nil {
		return name
	}

	cfg := lexer.Config()
	if strings.ToLower(cfg.Name) == name {
		return name
	}
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return name
}

// KnownLanguage reports whether chroma has a lexer registered for name.
func KnownLanguage(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && lexers.Get(name) != nil
}

// cellLanguage picks the fence language for a code cell. A leading %%name
// cell magic wins when it names a known language, otherwise the kernel
// language applies.
func cellLanguage(source, kernel string) string {
	if magic := cellMagic(source); magic != "" && KnownLanguage(magic) {
		return CanonicalLanguage(magic)
	}
	return CanonicalLanguage(kernel)
}

// cellMagic returns the name of a leading %%name cell magic, or "".
func cellMagic(source string) string {
	first, _, _ := strings.Cut(strings.TrimLeft(source, " \t\r\n"), "\n")
	if !strings.HasPrefix(first, "%%") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(first, "%%"))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
