package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// profile defines a user persona for generating seed data.
type profile struct {
	name        string
	description string
	// daysBack is how far back to start generating check-ins.
	daysBack int
	// frequency is the probability of checking in on a weekday and on a weekend day.
	frequency [2]float64
	// hours is the [from, to) range of check-in hours.
	hours [2]int
	// feel picks mood and energy; progress runs from 0 (first day) to 1 (today).
	feel func(day time.Time, progress float64, rng *rand.Rand) (entry.Mood, int)
	// reflections is a pool of reflection texts, indexed loosely by mood.
	reflections map[entry.Mood][]string
}

var defaultReflections = map[entry.Mood][]string{
	entry.MoodDown: {
		"Couldn't focus at all today. Slept badly and it showed.",
		"Too many meetings, no time for actual work.",
		"Felt isolated working from home all day.",
	},
	entry.MoodNeutral: {
		"Ordinary day. Got through the inbox, not much else.",
		"Some progress on the report, lots of small interruptions.",
		"Okay day. Skipped the walk and regretted it.",
	},
	entry.MoodGood: {
		"Solid study session in the morning, took proper breaks.",
		"Cleared the backlog and cooked a real dinner.",
		"Good conversation with a friend over lunch.",
	},
	entry.MoodVeryGood: {
		"Finished the draft ahead of schedule. Long walk at lunch helped.",
		"Deep work block went really well. Phone stayed in the other room.",
		"Great workout, felt sharp the whole afternoon.",
	},
	entry.MoodExcellent: {
		"Presentation went brilliantly. Celebrated with the team.",
		"Best day in weeks: rested, focused and outside in the sun.",
		"Everything clicked today. Want to remember how this felt.",
	},
}

var profiles = map[string]profile{
	"balanced": {
		name:        "balanced",
		description: "Steady routine with ordinary ups and downs (~60 days)",
		daysBack:    60,
		frequency:   [2]float64{0.85, 0.6},
		hours:       [2]int{8, 22},
		feel: func(day time.Time, progress float64, rng *rand.Rand) (entry.Mood, int) {
			mood := entry.Mood(2 + rng.Intn(3))
			return mood, clampEnergy(3 + rng.Intn(6))
		},
		reflections: defaultReflections,
	},
	"burnout": {
		name:        "burnout",
		description: "Energy and mood sliding down over six weeks, late check-ins",
		daysBack:    45,
		frequency:   [2]float64{0.9, 0.5},
		hours:       [2]int{19, 24},
		feel: func(day time.Time, progress float64, rng *rand.Rand) (entry.Mood, int) {
			energy := clampEnergy(int(8-6*progress) + rng.Intn(3) - 1)
			mood := entry.Mood(clamp(int(4.5-3*progress)+rng.Intn(2), 1, 5))
			return mood, energy
		},
		reflections: defaultReflections,
	},
	"early-bird": {
		name:        "early-bird",
		description: "Morning check-ins, high energy, mostly good days (~60 days)",
		daysBack:    60,
		frequency:   [2]float64{0.95, 0.9},
		hours:       [2]int{6, 10},
		feel: func(day time.Time, progress float64, rng *rand.Rand) (entry.Mood, int) {
			mood := entry.Mood(3 + rng.Intn(3))
			return mood, clampEnergy(6 + rng.Intn(5))
		},
		reflections: defaultReflections,
	},
	"weekend-recharge": {
		name:        "weekend-recharge",
		description: "Drained on weekdays, recovers at the weekend (~90 days)",
		daysBack:    90,
		frequency:   [2]float64{0.7, 0.95},
		hours:       [2]int{12, 21},
		feel: func(day time.Time, progress float64, rng *rand.Rand) (entry.Mood, int) {
			if isWeekend(day) {
				return entry.Mood(4 + rng.Intn(2)), clampEnergy(7 + rng.Intn(4))
			}
			return entry.Mood(1 + rng.Intn(3)), clampEnergy(2 + rng.Intn(4))
		},
		reflections: defaultReflections,
	},
}

const defaultProfile = "balanced"

var (
	seedProfile string
	seedYes     bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the journal with realistic sample check-ins",
	Long: `Populate the journal with realistic check-ins to explore the calendar and
insights without weeks of logging.

Available profiles:
  balanced          Steady routine with ordinary ups and downs (~60 days)
  burnout           Energy and mood sliding down, late check-ins (~45 days)
  early-bird        Morning check-ins, high energy (~60 days)
  weekend-recharge  Drained on weekdays, recovers at the weekend (~90 days)

If no profile is specified, "balanced" is used. Existing check-ins are kept;
you are asked to confirm when the journal is not empty.`,
	Example: `  moodlog seed
  moodlog seed --profile burnout
  moodlog seed --profile early-bird --yes
  moodlog seed --list`,
	Args:     cobra.NoArgs,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		listProfiles, _ := cmd.Flags().GetBool("list")
		if listProfiles {
			writeProfiles(os.Stdout)
			return nil
		}
		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		return seedRun(cmd.Context(), os.Stdout, seedProfile, seedYes, interactive, time.Now(), rand.New(rand.NewSource(time.Now().UnixNano())))
	},
}

// confirmer asks before adding to a non-empty journal; swapped out in tests.
var confirmer = func(prompt string) (bool, error) {
	return ui.Confirm(prompt, appTheme(), false)
}

func seedRun(ctx context.Context, w io.Writer, profileName string, yes, interactive bool, now time.Time, rng *rand.Rand) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if profileName == "" {
		profileName = defaultProfile
	}
	p, ok := profiles[profileName]
	if !ok {
		return usageError("unknown profile %q (run 'moodlog seed --list' to see available profiles)", profileName)
	}

	existing, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !yes {
		if !interactive {
			return usageError("journal already has %d check-ins; pass --yes to add sample data anyway", len(existing))
		}
		ok, err := confirmer(fmt.Sprintf("Journal already has %d check-ins. Add sample data anyway?", len(existing)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Seeding cancelled.")
			return nil
		}
	}

	generated := generateSeed(p, now, rng)
	if err := store.Save(ctx, append(existing, generated...)); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]any{
			"profile":          profileName,
			"checkins_created": len(generated),
			"checkins_total":   len(existing) + len(generated),
		})
	}
	fmt.Fprintf(w, "Seeded with profile %q:\n", profileName)
	fmt.Fprintf(w, "  Check-ins created: %d\n", len(generated))
	fmt.Fprintf(w, "  Check-ins total:   %d\n", len(existing)+len(generated))
	return nil
}

// generateSeed builds the check-ins a profile would have written up to now,
// oldest first. Every check-in passes the same validation as a real one.
func generateSeed(p profile, now time.Time, rng *rand.Rand) []entry.Entry {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -p.daysBack)
	var out []entry.Entry
	for i := 0; i <= p.daysBack; i++ {
		day := start.AddDate(0, 0, i)
		if rng.Float64() >= p.frequency[boolIndex(isWeekend(day))] {
			continue
		}
		at := randomTimeOfDay(day, p.hours, rng)
		if at.After(now) {
			continue
		}

		progress := float64(i) / float64(max(p.daysBack, 1))
		mood, energy := p.feel(day, progress, rng)
		pool := p.reflections[mood]
		if len(pool) == 0 {
			pool = defaultReflections[entry.MoodNeutral]
		}
		sub := entry.Submission{Date: &at, Mood: mood, Energy: &energy, Text: pool[rng.Intn(len(pool))]}
		e, err := sub.Build(now)
		if err != nil {
			logger.Debug("skipping generated check-in")
			continue
		}
		out = append(out, e)
	}
	return out
}

// randomTimeOfDay returns a time on the given day within [hours[0], hours[1]).
func randomTimeOfDay(day time.Time, hours [2]int, rng *rand.Rand) time.Time {
	span := max(hours[1]-hours[0], 1)
	hour := hours[0] + rng.Intn(span)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, day.Location())
}

func writeProfiles(w io.Writer) {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "Available profiles:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-18s %s\n", name, profiles[name].description)
	}
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampEnergy(v int) int {
	return clamp(v, entry.MinEnergy, entry.MaxEnergy)
}

func init() {
	seedCmd.Flags().StringVarP(&seedProfile, "profile", "p", defaultProfile, "profile to generate")
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "add sample data without asking when the journal is not empty")
	seedCmd.Flags().Bool("list", false, "list available profiles")
	rootCmd.AddCommand(seedCmd)
}
