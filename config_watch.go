package pdfcompare

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfig watches path for writes and calls onChange with the
// freshly reloaded Config each time. The returned stop func closes the
// underlying watcher; callers should defer it. A failed reload is
// logged and skipped, leaving the previous Config in effect.
func WatchConfig(path string, log *zap.Logger, onChange func(Config)) (stop func() error, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, newErr(ErrInternal, "starting config watcher", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, newErr(ErrInternal, "watching config file", err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadConfig(path)
				if err != nil {
					log.Warn("config reload failed, keeping previous config", zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", path))
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return watcher.Close, nil
}
