package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"coursecheck/internal/config"
	"coursecheck/internal/project"
	"coursecheck/internal/quiz"
	"coursecheck/internal/quizstate"
	"coursecheck/internal/report"
	"coursecheck/internal/scene"
	"coursecheck/internal/taskcheck"
	"coursecheck/internal/validation"
)

// workspace bundles the config and collaborators one command needs.
type workspace struct {
	root       string
	configPath string
	cfg        config.Config
	logger     *log.Logger
	render     *report.Renderer
}

// workspaceFlags are the options shared by commands that touch a project.
type workspaceFlags struct {
	config string
	root   string
	scene  string
}

// openWorkspace loads the config and resolves the project root: --root when
// set, else the directory holding .coursecheck, else the working directory.
func openWorkspace(flags workspaceFlags, stdout, stderr io.Writer) (*workspace, error) {
	start := strings.TrimSpace(flags.root)
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	cfg, configPath, err := loadConfig(flags.config, start)
	if err != nil {
		return nil, err
	}
	root := start
	if configPath != "" && strings.TrimSpace(flags.root) == "" {
		root = config.ProjectRootFromConfigPath(configPath)
	}

	render, err := report.NewRenderer(cfg.Validation.Color, stdout)
	if err != nil {
		return nil, err
	}
	return &workspace{
		root:       root,
		configPath: configPath,
		cfg:        cfg,
		logger:     log.New(stderr, "coursecheck: ", 0),
		render:     render,
	}, nil
}

// resolve makes a path relative to the project root absolute.
func (w *workspace) resolve(path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.root, path)
}

// scene loads the manifest named by the flag or the config. A missing
// configured manifest yields an empty scene with a warning; a missing
// explicit one is an error.
func (w *workspace) scene(sceneFlag string) (*scene.Scene, error) {
	if path := strings.TrimSpace(sceneFlag); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve scene manifest: %w", err)
		}
		return scene.Load(abs)
	}
	if w.cfg.Project.SceneManifest == "" {
		return scene.New(scene.Manifest{}), nil
	}
	s, err := scene.Load(w.resolve(w.cfg.Project.SceneManifest))
	if errors.Is(err, os.ErrNotExist) {
		w.logger.Printf("warning: scene manifest %s not found; using an empty scene", w.cfg.Project.SceneManifest)
		return scene.New(scene.Manifest{}), nil
	}
	return s, err
}

func (w *workspace) files() *project.Files {
	return project.NewFiles(w.root, w.cfg.Project.ScriptRoots)
}

func (w *workspace) engine() *validation.Engine {
	return validation.NewEngine(w.cfg.Validation, w.logger)
}

func (w *workspace) dispatcher(sc validation.SceneQuery) *taskcheck.Dispatcher {
	env := taskcheck.Env{Scene: sc, Files: w.files(), Engine: w.engine()}
	return taskcheck.NewDispatcher(w.cfg.Validation, taskcheck.NewDefaultRegistry(), env, w.logger)
}

func (w *workspace) session() *quiz.Session {
	return quiz.NewSession(w.cfg.Quiz, w.logger)
}

func (w *workspace) store() *quizstate.Store {
	return quizstate.NewStore(w.cfg.Quiz, w.root, w.logger)
}

// lessonKey identifies a lesson by its slash-separated path relative to the
// project root, so the same file maps to one state regardless of cwd.
func (w *workspace) lessonKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(w.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
