package model

import (
	"context"
	"path/filepath"

	"altscore/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// WatchArtifact 监听制品文件变更。参数在进程生命周期内不可变，
// 因此这里只告警提示需要重启才会生效，绝不热替换参数。
func WatchArtifact(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// 监听目录而非文件：训练侧通常以 rename 方式原子替换制品。
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}
	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					logger.Warnf("model artifact changed on disk (%s); loaded parameters are immutable, restart to pick it up", ev.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("artifact watcher error: %v", err)
			}
		}
	}()
	return nil
}
