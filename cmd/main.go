package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cfst-runner/pkg/colo"
	"cfst-runner/pkg/config"
	"cfst-runner/pkg/fetcher"
	"cfst-runner/pkg/httpclient"
	"cfst-runner/pkg/installer"
	"cfst-runner/pkg/iplist"
	"cfst-runner/pkg/notifier"
	"cfst-runner/pkg/result"
	"cfst-runner/pkg/scheduler"
	"cfst-runner/pkg/tester"
	"cfst-runner/pkg/uploader"
)

const (
	airportCodesFile = "airport_codes.json"
	resultFile       = "result.csv"
	regionScanFile   = "region_scan.csv"
	proxyListFile    = "ips_ports.txt"
)

func main() {
	var (
		mode       = flag.String("mode", "", "run mode: beginner, normal, proxy or scan")
		ipv6       = flag.Bool("ipv6", false, "test IPv6 instead of IPv4")
		count      = flag.Int("count", 10, "number of IPs to download-test")
		speed      = flag.Float64("speed", 1.0, "download speed floor in MB/s")
		delay      = flag.Int("delay", 1000, "latency ceiling in ms")
		threads    = flag.Int("thread", 200, "latency probe threads (1-1000)")
		region     = flag.String("region", "", "region code for normal mode, e.g. HKG")
		csvPath    = flag.String("csv", resultFile, "result CSV for proxy mode")
		upload     = flag.String("upload", "none", "upload target: api, github or none")
		workerDom  = flag.String("worker-domain", "", "worker domain for api upload")
		uuid       = flag.String("uuid", "", "path token for api upload")
		repo       = flag.String("repo", "", "owner/repo for github upload")
		token      = flag.String("token", "", "github personal access token")
		filePath   = flag.String("file-path", "cloudflare_ips.txt", "target file path for github upload")
		uploadN    = flag.Int("upload-count", 10, "how many records to upload")
		clear      = flag.Bool("clear", false, "clear existing registry entries before upload")
		cronSpec   = flag.String("cron", "", "run on this cron spec instead of once")
		configPath = flag.String("config", "config.yml", "optional yaml config file")
		clearCreds = flag.Bool("clear-config", false, "delete saved upload credentials and exit")
		dumpCodes  = flag.Bool("save-codes", false, "write the region code table to airport_codes.json and exit")
		listCodes  = flag.Bool("list-codes", false, "print the known region codes and exit")
	)
	flag.Parse()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	if *listCodes {
		table := colo.Builtin()
		if err := table.MergeFile(airportCodesFile); err != nil {
			log.Fatal(err)
		}
		for _, code := range table.Codes() {
			fmt.Printf("%-5s %s\n", code, table.Describe(code))
		}
		return
	}

	if *dumpCodes {
		table := colo.Builtin()
		if err := table.MergeFile(airportCodesFile); err != nil {
			log.Fatal(err)
		}
		if err := table.SaveFile(airportCodesFile); err != nil {
			log.Fatal(err)
		}
		log.Println("region code table written to", airportCodesFile)
		return
	}
	if *clearCreds {
		if err := config.ClearCredentials(config.CredentialFile); err != nil {
			log.Fatal(err)
		}
		log.Println("saved credentials cleared")
		return
	}
	if *mode == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config: ", err)
	}
	if *cronSpec == "" {
		*cronSpec = cfg.Cron
	}
	if cfg.IPv6 {
		*ipv6 = true
	}

	opts := scheduler.Options{
		Mode:         *mode,
		IPv6:         *ipv6,
		Count:        *count,
		SpeedLimit:   *speed,
		DelayLimit:   *delay,
		Threads:      *threads,
		Region:       *region,
		Upload:       *upload,
		WorkerDomain: *workerDom,
		UUID:         *uuid,
		Repo:         *repo,
		Token:        *token,
		FilePath:     *filePath,
		UploadCount:  *uploadN,
		Clear:        *clear,
	}
	opts = mergeConfigDefaults(opts, cfg, func(name string) bool { return setFlags[name] })

	app, err := newApp(cfg, opts, *csvPath)
	if err != nil {
		log.Fatal(err)
	}

	if *cronSpec != "" {
		job := func() {
			if err := app.runOnce(context.Background()); err != nil {
				log.Printf("scheduled run failed: %v", err)
				app.notify("Cloudflare 优选失败", err.Error())
				return
			}
			app.notify("Cloudflare 优选完成", app.lastSummary)
		}
		if exe, err := os.Executable(); err == nil {
			log.Printf("equivalent one-shot command: %s", scheduler.CommandLine(exe, opts))
		}
		if err := scheduler.Run(*cronSpec, job); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := app.runOnce(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// mergeConfigDefaults fills in the options whose flags the user left unset
// from config.yml, so scheduled runs can live entirely in the file.
func mergeConfigDefaults(opts scheduler.Options, cfg *config.Config, flagSet func(string) bool) scheduler.Options {
	if !flagSet("count") {
		opts.Count = cfg.Test.Count
	}
	if !flagSet("speed") {
		opts.SpeedLimit = cfg.Test.SpeedLimit
	}
	if !flagSet("delay") {
		opts.DelayLimit = cfg.Test.DelayLimit
	}
	if !flagSet("thread") {
		opts.Threads = cfg.Test.Threads
	}
	if !flagSet("upload") && cfg.Upload.Target != "" {
		opts.Upload = cfg.Upload.Target
	}
	if !flagSet("upload-count") {
		opts.UploadCount = cfg.Upload.Count
	}
	if !flagSet("clear") && cfg.Upload.Clear {
		opts.Clear = true
	}
	return opts
}

type app struct {
	cfg         *config.Config
	opts        scheduler.Options
	csvPath     string
	table       *colo.Table
	fetcher     *fetcher.Fetcher
	client      *httpclient.Client
	notifier    notifier.Notifier
	lastSummary string
}

func newApp(cfg *config.Config, opts scheduler.Options, csvPath string) (*app, error) {
	client, err := httpclient.New(cfg.Socks5Proxy)
	if err != nil {
		return nil, err
	}

	table := colo.Builtin()
	if err := table.MergeFile(airportCodesFile); err != nil {
		log.Printf("airport code overlay ignored: %v", err)
	}

	var n notifier.Notifier = notifier.Noop{}
	if cfg.Notifications.Enabled && cfg.Notifications.Telegram.BotToken != "" {
		tg, err := notifier.NewTelegram(cfg.Notifications.Telegram)
		if err != nil {
			return nil, fmt.Errorf("notifier: %w", err)
		}
		n = tg
	}

	return &app{
		cfg:      cfg,
		opts:     opts,
		csvPath:  csvPath,
		table:    table,
		fetcher:  fetcher.New(),
		client:   client,
		notifier: n,
	}, nil
}

func (a *app) notify(title, message string) {
	if err := a.notifier.Notify(title, message); err != nil {
		log.Printf("notification failed: %v", err)
	}
}

// runOnce executes one full pipeline pass for the configured mode.
func (a *app) runOnce(ctx context.Context) error {
	switch a.opts.Mode {
	case "proxy":
		n, err := iplist.WriteProxyList(a.csvPath, proxyListFile, a.table)
		if err != nil {
			return err
		}
		a.lastSummary = fmt.Sprintf("反代IP列表已生成: %s (%d 条)", proxyListFile, n)
		return nil
	case "scan":
		return a.runScan(ctx)
	case "beginner", "normal":
		return a.runMeasurement(ctx)
	default:
		return fmt.Errorf("unknown mode: %s", a.opts.Mode)
	}
}

func (a *app) runScan(ctx context.Context) error {
	bin, err := installer.New(a.fetcher, ".").Ensure(ctx)
	if err != nil {
		return err
	}
	if err := iplist.EnsureIPv4(ctx, a.fetcher, iplist.IPv4File); err != nil {
		return err
	}
	if err := tester.NewRunner(bin).Scan(ctx, iplist.IPv4File, regionScanFile); err != nil {
		return err
	}
	log.Printf("region scan saved to %s", regionScanFile)
	a.lastSummary = "地区扫描完成: " + regionScanFile
	return nil
}

func (a *app) runMeasurement(ctx context.Context) error {
	bin, err := installer.New(a.fetcher, ".").Ensure(ctx)
	if err != nil {
		return err
	}

	ipFile := iplist.IPv4File
	if a.opts.IPv6 {
		ipFile = iplist.IPv6File
		if err := iplist.WriteIPv6(ipFile); err != nil {
			return err
		}
	} else {
		if err := iplist.EnsureIPv4(ctx, a.fetcher, ipFile); err != nil {
			return err
		}
	}

	cleanup := func() {}
	if a.opts.Mode == "normal" {
		if a.opts.Region == "" {
			return errors.New("normal mode needs -region (e.g. -region HKG)")
		}
		if _, ok := a.table.Lookup(a.opts.Region); !ok {
			log.Printf("region code %s is not in the known table (see -list-codes); continuing anyway", a.opts.Region)
		}
		regionFile := strings.ToLower(a.opts.Region) + "_ips.txt"
		n, err := iplist.WriteRegionList(regionScanFile, a.opts.Region, regionFile, a.table)
		if err != nil {
			return fmt.Errorf("region list (run -mode scan first?): %w", err)
		}
		log.Printf("found %d IPs for region %s", n, a.opts.Region)
		ipFile = regionFile
		cleanup = func() { os.Remove(regionFile) }
	}

	runner := tester.NewRunner(bin)
	err = runner.Run(ctx, tester.Params{
		IPFile:     ipFile,
		Threads:    a.opts.Threads,
		Count:      a.opts.Count,
		SpeedLimit: a.opts.SpeedLimit,
		DelayLimit: a.opts.DelayLimit,
		Output:     resultFile,
	})
	cleanup()
	if err != nil {
		// A failed measurement never proceeds to upload.
		return err
	}

	summary := "测速完成: " + resultFile
	if a.opts.Upload != "none" && a.opts.Upload != "" {
		uploadSummary, err := a.runUpload(ctx)
		if err != nil {
			return err
		}
		summary += "\n" + uploadSummary
	}
	a.lastSummary = summary
	return nil
}

func (a *app) runUpload(ctx context.Context) (string, error) {
	records, err := result.ReadRecords(resultFile, a.table)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("no usable measurement results to upload")
	}

	creds, err := config.LoadCredentials(config.CredentialFile)
	if err != nil {
		log.Printf("saved credentials unreadable: %v", err)
		creds = &config.Credentials{}
	}

	switch a.opts.Upload {
	case "api":
		domain, token := a.opts.WorkerDomain, a.opts.UUID
		if domain == "" {
			domain = creds.WorkerDomain
		}
		if token == "" {
			token = creds.UUID
		}
		if domain == "" || token == "" {
			return "", errors.New("api upload needs -worker-domain and -uuid")
		}
		stats, err := uploader.NewAPIUploader(a.client).Upload(ctx,
			records, uploader.EndpointURL(domain, token), a.opts.UploadCount, a.opts.Clear)
		if err != nil {
			if errors.Is(err, uploader.ErrForbidden) {
				return "", fmt.Errorf("%w: check the path token and that API management is enabled", err)
			}
			return "", err
		}
		creds.RememberAPI(domain, token)
		if err := creds.Save(config.CredentialFile); err != nil {
			log.Printf("could not save credentials: %v", err)
		}
		msg := fmt.Sprintf("上报完成: 新增 %d, 跳过 %d, 失败 %d", stats.Added, stats.Skipped, stats.Failed)
		log.Println(msg)
		return msg, nil

	case "github":
		repoInfo, token := a.opts.Repo, a.opts.Token
		if repoInfo == "" {
			repoInfo = creds.RepoInfo
		}
		if token == "" {
			token = creds.GitHubToken
		}
		if repoInfo == "" || token == "" {
			return "", errors.New("github upload needs -repo and -token")
		}
		owner, repoName, ok := strings.Cut(repoInfo, "/")
		if !ok {
			return "", fmt.Errorf("repo must be owner/repo, got %q", repoInfo)
		}
		res, err := uploader.NewGitHubUploader(a.client).Upload(ctx,
			records, owner, repoName, a.opts.FilePath, token, a.opts.UploadCount)
		if err != nil {
			return "", err
		}
		creds.RememberGitHub(token, repoInfo, a.opts.FilePath)
		if err := creds.Save(config.CredentialFile); err != nil {
			log.Printf("could not save credentials: %v", err)
		}
		msg := fmt.Sprintf("上传完成: %d 条\n原始文件地址: %s", res.Uploaded, res.RawURL)
		log.Println(msg)
		return msg, nil

	default:
		return "", fmt.Errorf("unknown upload target: %s", a.opts.Upload)
	}
}
