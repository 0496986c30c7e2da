package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgit-dev/bgit/pkg/object"
)

// Init creates a new repository at path: the .bgit/ directory with
// objects/, refs/heads/, refs/tags/, a symbolic HEAD pointing at the
// default branch, and config.toml. Fails if .bgit/ already exists.
func Init(path string) (*Repo, error) {
	bgitDir := filepath.Join(path, ".bgit")

	if _, err := os.Stat(bgitDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", bgitDir)
	}

	dirs := []string{
		filepath.Join(bgitDir, "objects"),
		filepath.Join(bgitDir, "refs", "heads"),
		filepath.Join(bgitDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	cfg := defaultConfig()
	if err := writeConfig(bgitDir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r := &Repo{
		RootDir: path,
		BgitDir: bgitDir,
		Store:   object.NewStore(bgitDir),
		Config:  cfg,
	}

	// HEAD attaches to the default branch before it has any commits; the
	// branch ref exists empty until the first commit fills it.
	head := RefValue{Symbolic: true, Value: "refs/heads/" + cfg.DefaultBranch}
	if err := r.SetRef(HEAD, head, false); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	empty := RefValue{Symbolic: false, Value: ""}
	if err := r.SetRef("refs/heads/"+cfg.DefaultBranch, empty, false); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	return r, nil
}

// Open searches upward from path for a .bgit/ directory and opens the
// repository found there.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		bgitDir := filepath.Join(cur, ".bgit")
		info, err := os.Stat(bgitDir)
		if err == nil && info.IsDir() {
			cfg, err := loadConfig(bgitDir)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return &Repo{
				RootDir: cur,
				BgitDir: bgitDir,
				Store:   object.NewStore(bgitDir),
				Config:  cfg,
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a bgit repository (or any parent up to /)")
		}
		cur = parent
	}
}
