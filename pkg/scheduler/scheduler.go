// Package scheduler re-runs the pipeline on a cron spec and renders the
// equivalent one-shot command line for external schedulers.
package scheduler

import (
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"
)

// Run blocks forever, invoking job on every tick of spec. The job itself is
// responsible for catching its own failures; a failed run must not stop the
// schedule.
func Run(spec string, job func()) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	log.Printf("scheduler started, spec: %s", spec)
	c.Run()
	return nil
}

// Options captures everything needed to reproduce a run non-interactively.
// Threading this struct through explicitly replaces any notion of a
// process-global "last command" value.
type Options struct {
	Mode         string
	IPv6         bool
	Count        int
	SpeedLimit   float64
	DelayLimit   int
	Threads      int
	Region       string
	Upload       string // api, github or none
	WorkerDomain string
	UUID         string
	Repo         string
	Token        string
	FilePath     string
	UploadCount  int
	Clear        bool
}

// CommandLine renders the invocation of exe that repeats this run, suitable
// for a crontab entry or a scheduled task.
func CommandLine(exe string, o Options) string {
	parts := []string{exe, "-mode", o.Mode}
	if o.IPv6 {
		parts = append(parts, "-ipv6")
	}
	if o.Count > 0 {
		parts = append(parts, fmt.Sprintf("-count %d", o.Count))
	}
	if o.SpeedLimit > 0 {
		parts = append(parts, fmt.Sprintf("-speed %g", o.SpeedLimit))
	}
	if o.DelayLimit > 0 {
		parts = append(parts, fmt.Sprintf("-delay %d", o.DelayLimit))
	}
	if o.Threads > 0 {
		parts = append(parts, fmt.Sprintf("-thread %d", o.Threads))
	}
	if o.Mode == "normal" && o.Region != "" {
		parts = append(parts, "-region "+o.Region)
	}
	switch o.Upload {
	case "api":
		parts = append(parts, "-upload api")
		if o.WorkerDomain != "" {
			parts = append(parts, "-worker-domain "+o.WorkerDomain)
		}
		if o.UUID != "" {
			parts = append(parts, "-uuid "+o.UUID)
		}
		if o.UploadCount > 0 {
			parts = append(parts, fmt.Sprintf("-upload-count %d", o.UploadCount))
		}
		if o.Clear {
			parts = append(parts, "-clear")
		}
	case "github":
		parts = append(parts, "-upload github")
		if o.Token != "" {
			parts = append(parts, fmt.Sprintf("-token '%s'", o.Token))
		}
		if o.Repo != "" {
			parts = append(parts, "-repo "+o.Repo)
		}
		if o.FilePath != "" {
			parts = append(parts, "-file-path "+o.FilePath)
		}
		if o.UploadCount > 0 {
			parts = append(parts, fmt.Sprintf("-upload-count %d", o.UploadCount))
		}
	}
	return strings.Join(parts, " ")
}
