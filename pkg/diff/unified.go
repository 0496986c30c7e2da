package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/bgit-dev/bgit/pkg/object"
)

// DiffTrees renders a unified diff of the file changes between two
// trees. Identical trees produce an empty string. Added and deleted
// files diff against empty content, labeled /dev/null.
func (d *Differ) DiffTrees(before, after object.Hash) (string, error) {
	changes, err := d.ChangedFiles(before, after)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, c := range changes {
		text, err := d.diffBlobs(c)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

func (d *Differ) diffBlobs(c Change) (string, error) {
	var beforeData, afterData []byte
	var err error

	if c.Before != "" {
		if beforeData, err = d.store.ReadBlob(c.Before); err != nil {
			return "", fmt.Errorf("diff %s: %w", c.Path, err)
		}
	}
	if c.After != "" {
		if afterData, err = d.store.ReadBlob(c.After); err != nil {
			return "", fmt.Errorf("diff %s: %w", c.Path, err)
		}
	}

	fromFile := "/dev/null"
	toFile := "/dev/null"
	if c.Before != "" {
		fromFile = "a/" + c.Path
	}
	if c.After != "" {
		toFile = "b/" + c.Path
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(beforeData)),
		B:        difflib.SplitLines(string(afterData)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", c.Path, err)
	}
	return text, nil
}
