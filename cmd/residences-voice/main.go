// Command residences-voice resolves one transcript against a residence and
// prints the outcome as json, handy for tuning thresholds on real directories
//
//	residences-voice -residence <uuid> -user <uuid> -kind task "Juan Pérez baño completado"
//	echo "Peso de Juan Pérez 71,5" | residences-voice -residence <uuid> -user <uuid> -kind measurement
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"residences/internal/modkit"
	"residences/internal/modkit/module"
	"residences/internal/platform/config"
	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	"residences/internal/platform/store"

	"residences/internal/services/voice/domain"
	voicemod "residences/internal/services/voice/module"
	"residences/internal/services/voice/repo"
)

func main() {
	var (
		residence = flag.String("residence", "", "residence id (required)")
		user      = flag.String("user", "", "acting user id (required)")
		kind      = flag.String("kind", "task", "transcript kind: task or measurement")
		locale    = flag.String("locale", "", "confirmation locale, en or es (default CORE_VOICE_LOCALE)")
		audit     = flag.Bool("audit", false, "record the resolution in the audit trail")
	)
	flag.Parse()

	// stdout carries the outcome only
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	opt.Component = "voice-cli"
	logger.Init(opt)
	l := logger.Get()

	if *residence == "" || *user == "" {
		fmt.Fprintln(os.Stderr, "-residence and -user are required")
		flag.Usage()
		os.Exit(2)
	}
	if *kind != "task" && *kind != "measurement" {
		fmt.Fprintf(os.Stderr, "unknown -kind %q\n", *kind)
		os.Exit(2)
	}
	transcript, err := readTranscript(flag.Args(), os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	st, err := store.Open(ctx, store.FromEnv(root, "residences", "voice-cli"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var opts []modkit.Option
	if !*audit {
		opts = append(opts, modkit.WithPorts(voicemod.Injected{Audit: repo.NopAudit{}}))
	}
	m := voicemod.New(modkit.DepsFrom(st, root, *l, metrics.Default()), opts...)
	defer func() { _ = m.Close() }()
	svc := module.MustPortsOf[domain.ServicePort](m)

	in := domain.ParseInput{ResidenceID: *residence, UserID: *user, Transcript: transcript, Locale: *locale}
	var out domain.Outcome
	if *kind == "measurement" {
		out, err = svc.ParseMeasurement(ctx, in)
	} else {
		out, err = svc.ParseTask(ctx, in)
	}
	if err != nil {
		l.Error().Err(err).Msg("resolution failed")
		_ = m.Close()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

// readTranscript joins the positional args, or reads the first stdin line
func readTranscript(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	sc := bufio.NewScanner(stdin)
	if sc.Scan() {
		if t := strings.TrimSpace(sc.Text()); t != "" {
			return t, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", errors.New("no transcript given")
}
