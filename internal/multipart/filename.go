package multipart

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// MaxParts is the highest part number the three digit suffix can express.
const MaxParts = 999

var partSuffix = regexp.MustCompile(`_no(\d{3})$`)

// FormatFileName derives the file name of part no from the name of the first
// part. The first part keeps its name; later parts get `_noNNN` inserted
// before the extension. first may be a full URL.
func FormatFileName(first string, no int) (string, error) {
	if no < 1 || no > MaxParts {
		return "", &InvalidRangeError{Spec: strconv.Itoa(no), Reason: fmt.Sprintf("part number must be between 1 and %d", MaxParts)}
	}
	if no == 1 {
		return first, nil
	}
	suffix := fmt.Sprintf("_no%03d", no)
	ext := path.Ext(first)
	return strings.TrimSuffix(first, ext) + suffix + ext, nil
}

// PartNoFromFileName is the inverse of FormatFileName. Names without a part
// suffix are part 1.
func PartNoFromFileName(name string) int {
	base := strings.TrimSuffix(name, path.Ext(name))
	m := partSuffix.FindStringSubmatch(base)
	if m == nil {
		return 1
	}
	no, err := strconv.Atoi(m[1])
	if err != nil || no < 2 {
		return 1
	}
	return no
}
