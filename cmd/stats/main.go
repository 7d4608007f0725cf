package main

import (
	"chat-events/infrastructure/http/server"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

// Exit codes of the stats client.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	ServerAddr string        `envconfig:"STATS_SERVER_ADDR" default:"http://localhost:8080"`
	Timeout    time.Duration `envconfig:"STATS_TIMEOUT" default:"10s"`
	// STATS_COLOURS enables the colorized header
	Colours bool `envconfig:"STATS_COLOURS" default:"true"`
}

type Query struct {
	RoomID      int
	Granularity int
	From        string
	To          string
}

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Stats error: %v\n", err)
	}
	os.Exit(code)
}

// run prints the bucketed statistics of one room as a table.
func run(args []string, out io.Writer) (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	flags := flag.NewFlagSet("stats", flag.ContinueOnError)
	var query Query
	flags.IntVar(&query.RoomID, "room", 1, "Chat room id")
	flags.IntVar(&query.Granularity, "granularity", 1, "Bucket width in hours, a divisor of 24")
	flags.StringVar(&query.From, "from", "", "Exclusive lower bound, dd-MM-yyyyTHH:mm:ss")
	flags.StringVar(&query.To, "to", "", "Exclusive upper bound, dd-MM-yyyyTHH:mm:ss")
	if err := flags.Parse(args); err != nil {
		return exitConfig, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	buckets, err := fetch(ctx, http.DefaultClient, config.ServerAddr, query)
	if err != nil {
		return exitRuntime, err
	}
	render(out, query, buckets, config.Colours)
	return exitOK, nil
}

func fetch(ctx context.Context, client *http.Client, base string, query Query) ([]server.StatsResponse, error) {
	values := url.Values{}
	values.Set("chatRoomId", strconv.Itoa(query.RoomID))
	values.Set("granularity", strconv.Itoa(query.Granularity))
	if query.From != "" {
		values.Set("from", query.From)
	}
	if query.To != "" {
		values.Set("to", query.To)
	}
	target := strings.TrimRight(base, "/") + "/api/chatevent/getChatEventStats?" + values.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("could not reach %s: %w", base, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("server answered %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}
	var buckets []server.StatsResponse
	if err := json.NewDecoder(response.Body).Decode(&buckets); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return buckets, nil
}

func render(out io.Writer, query Query, buckets []server.StatsResponse, colours bool) {
	header := fmt.Sprintf("  ====== Room %d, every %dh ======", query.RoomID, query.Granularity)
	if colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Fprintln(out, header)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Hour", "Entered", "Left", "Comments", "High fiving", "High fived"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	for _, bucket := range buckets {
		table.Append([]string{
			bucket.Hour,
			strconv.Itoa(bucket.PeopleEnteredCount),
			strconv.Itoa(bucket.PeopleLeftCount),
			strconv.Itoa(bucket.CommentCount),
			strconv.Itoa(bucket.PeopleHighFivingCount),
			strconv.Itoa(bucket.PeopleHighFivedCount),
		})
	}
	table.Render()
	if len(buckets) == 0 {
		fmt.Fprintln(out, "No activity in range")
	}
}
