package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
)

// Adapter reads local machine state: battery via the kernel power_supply
// interface and wall-clock time for the time and date intents.
type Adapter struct {
	powerSupplyDir string
	now            func() time.Time
	log            *zap.Logger
}

func NewAdapter(log *zap.Logger) *Adapter {
	return &Adapter{
		powerSupplyDir: "/sys/class/power_supply",
		now:            time.Now,
		log:            log,
	}
}

func (a *Adapter) Battery(ctx context.Context) (*domain.BatteryStatus, error) {
	entries, err := os.ReadDir(a.powerSupplyDir)
	if err != nil {
		return nil, fmt.Errorf("system: read power supplies: %w", err)
	}

	for _, entry := range entries {
		dir := filepath.Join(a.powerSupplyDir, entry.Name())
		typ, err := readTrimmed(filepath.Join(dir, "type"))
		if err != nil || typ != "Battery" {
			continue
		}

		capStr, err := readTrimmed(filepath.Join(dir, "capacity"))
		if err != nil {
			continue
		}
		percent, err := strconv.Atoi(capStr)
		if err != nil {
			continue
		}

		status, _ := readTrimmed(filepath.Join(dir, "status"))
		return &domain.BatteryStatus{
			Percent:  percent,
			Charging: status == "Charging" || status == "Full",
			Present:  true,
		}, nil
	}

	// Desktops have no battery; that's not an error.
	return &domain.BatteryStatus{Present: false}, nil
}

func (a *Adapter) Now() (timeStr, dateStr string) {
	now := a.now()
	return now.Format("03:04 PM"), now.Format("Monday, January 02, 2006")
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
