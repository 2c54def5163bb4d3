package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ai_policy_builder/export"
	"ai_policy_builder/generator"
	"ai_policy_builder/markup"
	"ai_policy_builder/server"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	answersPath := flag.String("answers", "", "path to survey answers JSON (one-shot mode)")
	outPath := flag.String("out", "policy.pdf", "output PDF path (one-shot mode)")
	user := flag.String("user", "cli", "user identity for quota accounting (one-shot mode)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	logCfg := zap.NewProductionConfig()
	if *verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := generator.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	llm, err := buildLLM(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	quota := generator.NewMemoryQuotaStore(cfg.QuotaLimit)
	agent, err := generator.NewAgent(llm, quota, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		srv, err := server.New(agent, quota, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		logger.Info("starting web server", zap.String("addr", listen))
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// One-shot mode: answers JSON in, annotated policy PDF out.
	if *answersPath == "" {
		fmt.Fprintln(os.Stderr, "--answers is required (or use --serve)")
		os.Exit(1)
	}
	data, err := os.ReadFile(*answersPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var answers generator.SurveyAnswers
	if err := json.Unmarshal(data, &answers); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	combined := agent.Generate(ctx, answers, nil)
	result, err := agent.Finalize(ctx, *user, combined, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if result.QuotaWarning != "" {
		logger.Warn(result.QuotaWarning)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := export.PDF(markup.ToPlain(result.Document), f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("policy exported", zap.String("path", *outPath))
	fmt.Println(*outPath)
}

func buildLLM(cfg generator.Config) (generator.LLMClient, error) {
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "compatible":
		// Any OpenAI-compatible endpoint; base_url is mandatory.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider compatible requires base_url")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "mock":
		return &generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
