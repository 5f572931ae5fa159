package system

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Launcher opens local applications and URLs. App names map to per-platform
// program names; unknown apps are rejected rather than executed blindly.
type Launcher struct {
	apps map[string][]string
	log  *zap.Logger
}

func NewLauncher(log *zap.Logger) *Launcher {
	apps := map[string][]string{
		"terminal": {"x-terminal-emulator"},
		"notepad":  {"gedit"},
		"camera":   {"cheese"},
		"discord":  {"discord"},
		"vscode":   {"code"},
	}
	if runtime.GOOS == "windows" {
		apps = map[string][]string{
			"terminal": {"cmd", "/c", "start", "cmd"},
			"notepad":  {"notepad"},
			"camera":   {"cmd", "/c", "start", "microsoft.windows.camera:"},
			"discord":  {"cmd", "/c", "start", "discord:"},
			"vscode":   {"cmd", "/c", "code"},
		}
	}
	return &Launcher{apps: apps, log: log}
}

func (l *Launcher) OpenApp(ctx context.Context, name string) error {
	argv, ok := l.apps[name]
	if !ok {
		return fmt.Errorf("launcher: unknown application %q", name)
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		l.log.Error("failed to launch application", zap.String("app", name), zap.Error(err))
		return fmt.Errorf("launcher: start %s: %w", name, err)
	}
	l.log.Info("application launched", zap.String("app", name))
	// Detach; the assistant must not block on the child's lifetime.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (l *Launcher) OpenURL(ctx context.Context, url string) error {
	var argv []string
	switch runtime.GOOS {
	case "windows":
		argv = []string{"cmd", "/c", "start", url}
	case "darwin":
		argv = []string{"open", url}
	default:
		argv = []string{"xdg-open", url}
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		l.log.Error("failed to open URL", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("launcher: open url: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
