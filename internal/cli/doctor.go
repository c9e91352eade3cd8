package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/keyring"
	"github.com/lruiz/growthspace/internal/models"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: storage reachable
	if err := ctx.Provider.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK (%s)\n", ctx.Provider.GetConfigPath())
		storeReachable = true
	}

	// Check 2: habit data integrity (only if storage is reachable)
	if storeReachable {
		if err := checkHabitIntegrity(ctx); err != nil {
			fmt.Printf("❌ Habit integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 3: OS keyring
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; use %s for AI features\n", constants.GeminiKeyEnvVar)
	}

	// Check 4: Gemini API key (informational, AI features degrade without it)
	if _, err := keyring.GetGeminiKey(); err == nil {
		fmt.Printf("✓ Gemini API key: OK\n")
	} else {
		fmt.Printf("⚠ Gemini API key: WARNING\n")
		fmt.Printf("   No key found; suggestions and insights fall back to canned content\n")
	}

	// Check 5: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	// Check 6: concurrent instances
	if others, err := findOtherInstances(); err != nil {
		fmt.Printf("⊘ Concurrent instances: SKIPPED (%v)\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Concurrent instances: WARNING\n")
		fmt.Printf("   Another %s process is running (pid %d); last write wins\n", constants.AppName, others[0])
	} else {
		fmt.Printf("✓ Concurrent instances: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkHabitIntegrity(ctx *Context) error {
	habits, err := ctx.Provider.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to read habits: %w", err)
	}

	seen := make(map[string]bool)
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		seen[h.ID] = true

		if err := checkHabitDates(h); err != nil {
			return err
		}
	}
	return nil
}

func checkHabitDates(h models.Habit) error {
	for _, day := range h.CompletedDates {
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return fmt.Errorf("habit %q has malformed completion date %q", h.Name, day)
		}
	}
	for _, day := range h.SpecificDates {
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return fmt.Errorf("habit %q has malformed specific date %q", h.Name, day)
		}
	}
	for _, d := range h.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("habit %q has weekday %d outside 0-6", h.Name, d)
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// findOtherInstances looks for other running processes with our executable
// name. Wholesale writes from two instances can clobber each other.
func findOtherInstances() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("process listing unavailable: %w", err)
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
