package file

import (
	"errors"

	"github.com/fsnotify/fsnotify"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/source"
)

type watcher struct {
	f *file

	fw   *fsnotify.Watcher
	exit chan bool
}

func newWatcher(f *file) (source.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(f.path); err != nil {
		return nil, err
	}

	return &watcher{
		f:    f,
		fw:   fw,
		exit: make(chan bool),
	}, nil
}

func (w *watcher) Next() (*source.ChangeSet, error) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil, errors.New("watcher stopped")
			}
			// 编辑器保存可能触发rename/create，统一按变更处理
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			return w.f.Read()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil, errors.New("watcher stopped")
			}
			return nil, err
		case <-w.exit:
			return nil, errors.New("watcher stopped")
		}
	}
}

func (w *watcher) Stop() error {
	close(w.exit)
	return w.fw.Close()
}
