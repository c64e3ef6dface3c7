package main

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	spiderkit "github.com/SpiderKit/spiderkit-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url...]",
		Short: "Crawl the given URLs and store extracted pages",
		Long: `Crawl seeds the queue with the given URLs, fetches pages with the
download runner and follows same-host links with the link extractor until
the queue drains.

Seeds and options can also come from a YAML config file:

  seeds:
    - https://example.com/
  allowed_hosts:
    - example.com
  user_agent: spiderkit/0.1
  db: crawl.db
  redis: localhost:6379`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringP("config", "c", "", "YAML config file")
	cmd.Flags().StringP("db", "d", "", "SQLite database to store pages in (default: in-memory)")
	cmd.Flags().StringP("redis", "r", "", "Redis address for the task queue (default: in-memory)")
	cmd.Flags().StringP("queue", "q", "default", "Queue name when using Redis")
	cmd.Flags().StringP("user-agent", "u", "spiderkit/0.1", "User-Agent header")
	cmd.Flags().StringSliceP("allowed-hosts", "H", nil,
		"Hosts the crawler may fetch from (default: the seed hosts)")

	return cmd
}

func runCrawlCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log := spiderkit.NewZeroLogger(zl)

	conf := spiderkit.Conf{}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := spiderkit.LoadConf(path)
		if err != nil {
			return err
		}
		conf = loaded
	}

	seeds := append(conf.Strings("seeds"), args...)
	if len(seeds) == 0 {
		return fmt.Errorf("no seed URLs given (arguments or 'seeds' in the config file)")
	}

	hosts, _ := cmd.Flags().GetStringSlice("allowed-hosts")
	if len(hosts) == 0 {
		hosts = conf.Strings("allowed_hosts")
	}
	if len(hosts) == 0 {
		// Unconstrained crawls escape onto the open web; default to the
		// hosts the seeds point at.
		for _, s := range seeds {
			u, err := url.Parse(s)
			if err != nil || u.Host == "" {
				return fmt.Errorf("bad seed URL %q", s)
			}
			hosts = append(hosts, u.Host)
		}
	}

	ua, _ := cmd.Flags().GetString("user-agent")
	if v := conf.String("user_agent", ""); v != "" {
		ua = v
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := spiderkit.SpiderConfig{Logger: log}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = conf.String("db", "")
	}
	var sqlStore *spiderkit.SQLiteStorage
	memStore := spiderkit.NewMemoryStorage()
	if dbPath != "" {
		st, err := spiderkit.OpenSQLiteStorage(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		sqlStore = st
		cfg.Storage = st
	} else {
		cfg.Storage = memStore
	}

	redisAddr, _ := cmd.Flags().GetString("redis")
	if redisAddr == "" {
		redisAddr = conf.String("redis", "")
	}
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer rdb.Close()
		queueName, _ := cmd.Flags().GetString("queue")
		cfg.Queue = spiderkit.NewRedisQueue(ctx, rdb, queueName)
	}

	runnerConf := spiderkit.Conf{
		"allowed_hosts": hosts,
		"user_agent":    ua,
	}

	spider := spiderkit.NewSpider(cfg)
	spider.Register(
		spiderkit.NewDownloader(runnerConf),
		spiderkit.NewLinkExtractor(runnerConf),
	)

	for _, s := range seeds {
		if err := spider.Submit(spiderkit.NewDownloadTask(s)); err != nil {
			return err
		}
	}

	if err := spider.Run(ctx); err != nil {
		return err
	}

	if sqlStore != nil {
		counts, err := sqlStore.CountByKind()
		if err != nil {
			return err
		}
		for kind, n := range counts {
			fmt.Printf("%s: %d stored\n", kind, n)
		}
		return nil
	}
	for _, kind := range memStore.Kinds() {
		fmt.Printf("%s: %d stored\n", kind, len(memStore.Objects(kind)))
	}
	return nil
}
