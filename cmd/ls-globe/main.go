// Command ls-globe is a terminal UI for exploring day and night,
// seasons, and solar time on an interactive globe.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-globe/internal/config"
	"github.com/litescript/ls-globe/internal/geo"
	"github.com/litescript/ls-globe/internal/geocode"
	"github.com/litescript/ls-globe/internal/geom"
	"github.com/litescript/ls-globe/internal/logging"
	"github.com/litescript/ls-globe/internal/solar"
	"github.com/litescript/ls-globe/internal/state"
	"github.com/litescript/ls-globe/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode    bool
	terminatorMode bool
	watchInterval  time.Duration
)

const startupLookupTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	city := flag.String("city", cfg.DefaultCity, "Observer city (catalog name or place to geocode)")
	dateStr := flag.String("date", "", "Simulated date (YYYY-MM-DD, default today)")
	day := flag.Int("day", 0, "Simulated day of year 1-365 (overrides -date)")
	utc := flag.Float64("utc", -1, "Simulated UTC hour 0-24 (default current time)")
	obliquity := flag.Float64("obliquity", cfg.ObliquityDeg, "Axial tilt in degrees")
	citiesFile := flag.String("cities", cfg.CitiesFile, "Extra city catalog (YAML)")
	geocodeURL := flag.String("geocode-url", cfg.GeocodeURL, "Geocoding endpoint override")
	offline := flag.Bool("offline", false, "Resolve places from the built-in catalog only")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Log file path (TUI logs are discarded without one)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a solar summary instead of the TUI")
	flag.BoolVar(&terminatorMode, "terminator", false, "Print terminator coordinates and exit")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat the summary at interval (e.g., 30s)")
	flag.Parse()

	headless := summaryMode || terminatorMode

	logger, closeLog, err := setupLogger(*logLevel, *logFile, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	catalog, err := buildCatalog(*citiesFile, logger.WithPrefix("catalog"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catalog error: %v\n", err)
		os.Exit(1)
	}

	geocoder := buildGeocoder(*geocodeURL, *offline, catalog)

	observer, err := resolveObserver(ctx, *city, catalog, geocoder, logger.WithPrefix("geocode"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not resolve %q: %v\n", *city, err)
		os.Exit(1)
	}

	dayOfYear, utcHour, err := resolveInstant(*dateStr, *day, *utc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stateCfg := state.DefaultConfig()
	stateCfg.DayOfYear = dayOfYear
	stateCfg.UTCHour = utcHour
	stateCfg.ObliquityDeg = *obliquity
	stateCfg.Observer = observer
	stateCfg.HoursPerTick = cfg.HoursPerTick
	stateMgr := state.NewManager(stateCfg)

	if headless {
		runHeadless(ctx, stateMgr, *dateStr, *day, *utc)
		return
	}

	model := ui.New(stateMgr, geocoder, catalog, cfg.TickInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("Starting TUI for %s (day %d, %.2fh UTC)", observer.Name, dayOfYear, utcHour)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger picks the log destination. The TUI owns the terminal,
// so its logs go to a file or nowhere.
func setupLogger(level, path string, headless bool) (*logging.Logger, func() error, error) {
	noop := func() error { return nil }
	if path != "" {
		logger, closeFn, err := logging.NewFile(logging.ParseLevel(level), path)
		if err != nil {
			return nil, nil, err
		}
		return logger, closeFn, nil
	}
	if headless {
		return logging.New(logging.ParseLevel(level)), noop, nil
	}
	return logging.Discard(), noop, nil
}

// buildCatalog loads the built-in city table plus any user file.
func buildCatalog(path string, logger *logging.Logger) (*geo.Catalog, error) {
	catalog := geo.DefaultCatalog()
	if path == "" {
		return catalog, nil
	}
	extra, err := geo.LoadCities(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %d extra cities from %s", len(extra), path)
	return catalog.Extend(extra), nil
}

// buildGeocoder chains the remote geocoder with the offline catalog
// fallback.
func buildGeocoder(baseURL string, offline bool, catalog *geo.Catalog) geocode.Provider {
	catalogProvider := geocode.NewCatalogProvider(catalog)
	if offline {
		return catalogProvider
	}
	return geocode.NewChain(geocode.NewOpenMeteoProvider(baseURL), catalogProvider)
}

// resolveObserver finds the starting observer: catalog first, then the
// geocoder.
func resolveObserver(ctx context.Context, name string, catalog *geo.Catalog, geocoder geocode.Provider, logger *logging.Logger) (geo.Observer, error) {
	if city, ok := catalog.Find(name); ok {
		return city.Observer(), nil
	}

	logger.Info("%q not in catalog, geocoding", name)
	lookupCtx, cancel := context.WithTimeout(ctx, startupLookupTimeout)
	defer cancel()

	place, err := geocoder.Lookup(lookupCtx, name)
	if err != nil {
		return geo.Observer{}, err
	}
	return place.Observer(), nil
}

// resolveInstant turns the date/day/utc flags into a simulated
// instant, defaulting to the current wall clock.
func resolveInstant(dateStr string, day int, utc float64) (int, float64, error) {
	now := time.Now().UTC()

	dayOfYear := solar.DayOfYear(now)
	if dateStr != "" {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid -date (want YYYY-MM-DD): %w", err)
		}
		dayOfYear = solar.DayOfYear(t)
	}
	if day != 0 {
		if day < 1 || day > 365 {
			return 0, 0, fmt.Errorf("-day must be 1-365, got %d", day)
		}
		dayOfYear = day
	}

	utcHour := float64(now.Hour()) + float64(now.Minute())/60
	if utc >= 0 {
		if utc >= 24 {
			return 0, 0, fmt.Errorf("-utc must be under 24, got %v", utc)
		}
		utcHour = utc
	}

	return dayOfYear, utcHour, nil
}

// runHeadless handles the non-TUI modes.
func runHeadless(ctx context.Context, stateMgr *state.Manager, dateStr string, day int, utc float64) {
	var lastFlush time.Time

	outputOnce := func() {
		// Without pinned flags, track the wall clock on each
		// refresh.
		var now time.Time
		if dateStr == "" && day == 0 && utc < 0 {
			now = time.Now().UTC()
			stateMgr.SetDayOfYear(solar.DayOfYear(now))
			stateMgr.SetUTCHour(float64(now.Hour()) + float64(now.Minute())/60)
		}
		snap := stateMgr.Snapshot()

		if terminatorMode {
			writeTerminator(os.Stdout, snap)
			return
		}
		writeSummary(os.Stdout, snap, now)
		writeEvents(os.Stdout, stateMgr.RecentEvents(8), lastFlush)
		lastFlush = time.Now()
	}

	if watchInterval == 0 {
		outputOnce()
		return
	}

	outputOnce()
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			outputOnce()
		}
	}
}

// writeSummary prints the solar geometry for the tracked observer.
// When the summary tracks the wall clock, now carries that instant and
// the true (ephemeris) subsolar point is reported alongside the
// teaching value; a zero now means the instant was pinned by flags.
func writeSummary(w io.Writer, snap state.Snapshot, now time.Time) {
	in := snap.Inputs
	d := snap.Derived

	fmt.Fprintf(w, "%s (%.2f°, %.2f°)  day %d  %05.2fh UTC\n",
		in.Observer.Name, in.Observer.LatDeg, in.Observer.LonDeg, in.DayOfYear, in.UTCHour)
	fmt.Fprintf(w, "  subsolar latitude  %+.2f°\n", d.SubsolarLatDeg)
	if !now.IsZero() {
		lat, lon := solar.SubsolarPoint(now)
		fmt.Fprintf(w, "  true subsolar now  %+.2f°, %.1f°\n", lat, lon)
	}
	fmt.Fprintf(w, "  noon meridian      %.1f°  (dawn %.1f°, dusk %.1f°)\n",
		d.NoonLonDeg, d.DawnLonDeg, d.DuskLonDeg)
	fmt.Fprintf(w, "  local solar time   %05.2fh\n", d.LocalSolarHour)
	fmt.Fprintf(w, "  day length         %.2fh\n", d.DayLengthHours)
	if d.HasSunrise {
		fmt.Fprintf(w, "  sunrise / sunset   %05.2fh / %05.2fh (solar time)\n", d.SunriseHour, d.SunsetHour)
	} else if d.DayLengthHours >= 24 {
		fmt.Fprintf(w, "  sunrise / sunset   midnight sun\n")
	} else {
		fmt.Fprintf(w, "  sunrise / sunset   polar night\n")
	}
	if d.Daytime {
		fmt.Fprintf(w, "  currently          daylight\n")
	} else {
		fmt.Fprintf(w, "  currently          night\n")
	}
}

// writeEvents prints events recorded after the previous refresh, so a
// -watch run reports sunrise and sunset as they happen.
func writeEvents(w io.Writer, events []state.Event, since time.Time) {
	for _, e := range events {
		if !e.Timestamp.After(since) {
			continue
		}
		subject := e.Observer
		if subject == "" {
			subject = e.Detail
		}
		fmt.Fprintf(w, "  event              %s %s\n", e.Type, subject)
	}
}

// writeTerminator prints the terminator as geographic coordinates,
// one point per line.
func writeTerminator(w io.Writer, snap state.Snapshot) {
	d := snap.Derived
	conv := geom.DefaultConvention()

	points := geom.TerminatorPoints(d.SubsolarLatDeg, 1, geom.DefaultStepDeg)
	fmt.Fprintf(w, "# terminator for subsolar latitude %+.2f°, noon at %.1f°\n", d.SubsolarLatDeg, d.NoonLonDeg)
	fmt.Fprintln(w, "# lat_deg lon_deg")
	for _, p := range points {
		lat, sceneLon := geom.LatLon(p, conv)
		geoLon := sceneLon + d.NoonLonDeg
		if geoLon > 180 {
			geoLon -= 360
		}
		if geoLon <= -180 {
			geoLon += 360
		}
		fmt.Fprintf(w, "%8.3f %9.3f\n", lat, geoLon)
	}
}
