package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/config"
	"github.com/nexussfan/virtual-lunduke/internal/detect"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
	"github.com/nexussfan/virtual-lunduke/internal/logging"
	"github.com/nexussfan/virtual-lunduke/internal/report"
	"github.com/nexussfan/virtual-lunduke/internal/scan"
)

// probeHost identifies the running host. Tests replace it.
var probeHost detect.HostProber = detect.ProbeHost

// osHostname names the host when the probe reports no hostname.
var osHostname = os.Hostname

// session is everything a scan needs, resolved from the configuration.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	host   detect.Host
	tag    detect.Tag
	loader *catalog.Loader
	data   *catalog.Data
	cat    catalog.Catalog
	system detect.System
}

// openCatalog resolves the data sources and loads the platform-independent data.
func openCatalog(cfg *config.Config) (*catalog.Loader, *catalog.Data, error) {
	loader, err := catalog.Resolve(cfg.DataDir)
	if err != nil {
		return nil, nil, errors.NewUserError(err, "check the --data-dir path")
	}
	data, err := loader.LoadData()
	if err != nil {
		return nil, nil, errors.NewUserError(err, "Run: virtual-lunduke doctor")
	}
	return loader, data, nil
}

// openSession identifies the host, loads its catalog and selects the
// detection system. The caller must Close the session.
func openSession(ctx context.Context) (*session, error) {
	s := &session{
		cfg:    loadedConfig(),
		logger: logging.FromContext(ctx),
	}

	host, err := probeHost(ctx)
	if err != nil {
		return nil, errors.NewSystemError(err, "set platform.family in the config file or pass --platform-family")
	}
	s.host = host.WithFamily(s.cfg.Platform.Family)

	construct, tag, err := detect.Select(s.host)
	if err != nil {
		return nil, errors.NewSystemError(err, "supported hosts are Debian-family Linux, FreeBSD and DragonFly BSD")
	}
	s.tag = tag
	s.logger.Debug("platform identified", "host", s.host.String(), "tag", tag)

	s.loader, s.data, err = openCatalog(s.cfg)
	if err != nil {
		return nil, err
	}
	s.cat, err = s.loader.LoadPlatform(string(tag))
	if err != nil {
		return nil, errors.NewUserError(err, "Run: virtual-lunduke doctor")
	}

	s.system, err = construct(s.cat, detectOptions(s.cfg, tag, s.logger)...)
	if err != nil {
		return nil, classify(err)
	}
	return s, nil
}

// Close releases the detection system.
func (s *session) Close() error {
	if s.system == nil {
		return nil
	}
	return s.system.Close()
}

// detectOptions translates the configuration into detection system options.
func detectOptions(cfg *config.Config, tag detect.Tag, logger *slog.Logger) []detect.Option {
	opts := []detect.Option{
		detect.WithLogger(logger),
		detect.WithBindingConfig(detect.BindingConfig{
			StatusFile: cfg.Apt.StatusFile,
			Database:   cfg.Pkg.Database,
		}),
	}
	switch tag {
	case detect.TagApt:
		opts = append(opts, detect.WithBindingNames(cfg.Apt.Bindings...))
	case detect.TagPkg:
		opts = append(opts, detect.WithBindingNames(cfg.Pkg.Bindings...))
	}
	return opts
}

// classify maps detection errors to exit codes.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, detect.ErrUnknownApplication):
		return errors.NewUserError(err, "Run: virtual-lunduke --list-apps")
	case errors.Is(err, detect.ErrUnsupportedPlatform):
		return errors.NewSystemError(err, "supported hosts are Debian-family Linux, FreeBSD and DragonFly BSD")
	default:
		return errors.NewSystemError(err, "Run: virtual-lunduke doctor")
	}
}

// check runs the scan over apps. A nil catalog restricts nothing, so
// applications the platform does not know surface as errors.
func (s *session) check(ctx context.Context, apps []string, restrict catalog.Catalog) ([]scan.Entry, error) {
	scanner := &scan.Scanner{
		System:  s.system,
		Catalog: restrict,
		Jobs:    s.cfg.Jobs,
		Logger:  s.logger,
	}
	entries, err := scanner.Run(ctx, apps)
	if err != nil {
		return nil, classify(err)
	}
	return entries, nil
}

// report writes the found entries in the configured format.
func (s *session) report(w io.Writer, entries []scan.Entry) error {
	format, err := report.ParseFormat(s.cfg.Output)
	if err != nil {
		return errors.NewUserError(err, "use --output text, json, yaml or toml")
	}
	opts := report.Options{
		Notes:        s.cfg.Notes,
		Alternatives: s.cfg.Alternatives,
		Hostname:     s.hostname(),
		Tag:          string(s.tag),
		Binding:      s.system.Binding(),
	}
	doc := report.NewDocument(entries, s.data, opts)
	return errors.Wrap(report.NewReporter(w, format, opts).Report(doc), "writing report")
}

// hostname returns the probed hostname, then the kernel's, then "localhost".
func (s *session) hostname() string {
	if s.host.Hostname != "" {
		return s.host.Hostname
	}
	name, err := osHostname()
	if err != nil || name == "" {
		s.logger.Debug("hostname unavailable", "error", err)
		return "localhost"
	}
	return name
}

// runScan checks apps, or every supported application when apps is empty,
// and writes the report.
func runScan(cmd *cobra.Command, apps []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Debug(fmt.Sprintf("%s selected as detection system", s.tag), "binding", s.system.Binding())

	var restrict catalog.Catalog
	if len(apps) == 0 {
		apps = s.data.Apps
		restrict = s.cat
	}

	entries, err := s.check(ctx, apps, restrict)
	if err != nil {
		return err
	}
	return s.report(cmd.OutOrStdout(), entries)
}

// runListApps prints every supported application, one per line.
func runListApps(cmd *cobra.Command) error {
	_, data, err := openCatalog(loadedConfig())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Supported apps:")
	for _, app := range data.Apps {
		fmt.Fprintln(w, app)
	}
	return nil
}
