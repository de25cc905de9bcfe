package nb2md

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-nb2md/internal/fileutil"
)

// TitleDeriver turns a notebook file name into a front matter title.
// The zero value replaces only the first underscore, so "my_data_set.ipynb"
// becomes "My data_set".
type TitleDeriver struct {
	// ReplaceAllUnderscores turns every underscore into a space.
	ReplaceAllUnderscores bool
}

// Derive returns the title for fileName: base name without the notebook
// extension, first character upper-cased, underscores replaced per d.
func (d TitleDeriver) Derive(fileName string) string {
	name := baseName(fileName)
	name = strings.TrimSuffix(name, fileutil.NotebookExt)
	name = capitalize(name)

	if d.ReplaceAllUnderscores {
		return strings.ReplaceAll(name, "_", " ")
	}
	return strings.Replace(name, "_", " ", 1)
}

// DeriveTitle applies the default TitleDeriver.
func DeriveTitle(fileName string) string {
	return TitleDeriver{}.Derive(fileName)
}

// baseName handles both separators so Windows paths derive the same title
// on any OS.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
