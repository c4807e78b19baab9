package codebase

import (
	"io/fs"
	"path/filepath"
	"time"
)

// FileWatcher polls the project for changed, added and removed source
// files and keeps the codebase in step with them.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, f *File)
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// OnChange registers fn to run after a file is rescanned or removed. A
// removed file is reported with a nil File.
func (w *FileWatcher) OnChange(fn func(path string, f *File)) {
	w.onChange = fn
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	p := w.codebase.Project()
	currentFiles := make(map[string]bool)

	for _, root := range p.Config.Source.Roots {
		dir := root
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.RootDir, root)
		}
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if p.Excluded(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !p.IsSource(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}

			currentFiles[path] = true

			lastMod, known := w.modTimes[path]
			if !known && w.upToDate(path, info.ModTime()) {
				w.modTimes[path] = info.ModTime()
				return nil
			}
			if !known || info.ModTime().After(lastMod) {
				w.modTimes[path] = info.ModTime()
				if err := w.codebase.ScanFile(path); err != nil {
					log.Warningf("rescan %s: %s", path, err)
					return nil
				}
				w.notify(path, w.codebase.GetFile(path))
			}
			return nil
		})
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.notify(path, nil)
		}
	}
}

// upToDate reports whether the codebase already holds path as read from
// disk at modTime or later, as it does right after ScanAll.
func (w *FileWatcher) upToDate(path string, modTime time.Time) bool {
	f := w.codebase.GetFile(path)
	return f != nil && !f.ModTime.IsZero() && !modTime.After(f.ModTime)
}

func (w *FileWatcher) notify(path string, f *File) {
	if w.onChange != nil {
		w.onChange(path, f)
	}
}
