package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryotel "github.com/getsentry/sentry-go/otel"
	"github.com/spf13/viper"
	_ "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/voi-labs/vqs/domain"
	vqslog "github.com/voi-labs/vqs/log"
)

// @title           Voi Quote Server API
// @version         1.0
func main() {
	configPath := flag.String("config", "config.json", "config file location")

	hostName := flag.String("host", "vqs", "the name of the host")

	port := flag.String("port", "", "the server port, overriding the config file")

	isDebug := flag.Bool("debug", false, "debug mode")
	if *isDebug {
		log.Println("Service RUN on DEBUG mode")
	}

	// Parse the command-line arguments
	flag.Parse()

	fmt.Println("configPath", *configPath)
	fmt.Println("hostName", *hostName)

	config, err := loadConfig(*configPath)
	if err != nil {
		panic(err)
	}
	if *port != "" {
		config.ServerAddress = overridePort(config.ServerAddress, *port)
	}

	// Handle SIGINT and SIGTERM signals to initiate shutdown
	exitChan := make(chan os.Signal, 1)
	signal.Notify(exitChan, os.Interrupt, syscall.SIGTERM)

	defer func() {
		if err := recover(); err != nil {
			log.Println(err)
			exitChan <- syscall.SIGTERM
		}
	}()

	if config.OTEL != nil && config.OTEL.DSN != "" {
		otelConfig := config.OTEL

		// custom sampler that samples quote endpoints per their configured rates.
		traceSampler := sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span == nil {
				return 0
			}

			if samplerRate, ok := otelConfig.CustomSampleRate[ctx.Span.Name]; ok {
				return samplerRate
			}

			return otelConfig.SampleRate
		})

		err := sentry.Init(sentry.ClientOptions{
			ServerName:    *hostName,
			Dsn:           otelConfig.DSN,
			SampleRate:    otelConfig.SampleRate,
			EnableTracing: true,
			Debug:         *isDebug,
			TracesSampler: traceSampler,
			Environment:   otelConfig.Environment,
		})
		if err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		defer sentry.Flush(2 * time.Second)

		sentry.CaptureMessage("VQS started")

		initOTELTracer(*hostName)
	}

	// logger
	logger, err := vqslog.NewLogger(config.LoggerIsProduction, config.LoggerFilename, config.LoggerLevel)
	if err != nil {
		panic(fmt.Errorf("error while creating logger: %s", err))
	}
	logger.Info("Starting quote server")

	quoteServer, err := NewQuoteServer(config, logger)
	if err != nil {
		panic(err)
	}

	// Use context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-exitChan
		cancel() // Trigger shutdown

		if err := quoteServer.Shutdown(ctx); err != nil {
			log.Fatal(err)
		}

		os.Exit(0)
	}()

	if err := quoteServer.Start(ctx); err != nil {
		panic(err)
	}
}

// loadConfig reads the config file over the defaults. Environment variables
// with the VQS_ prefix override file values ("chain.node-url" becomes
// VQS_CHAIN_NODE_URL).
func loadConfig(configPath string) (domain.Config, error) {
	config := DefaultConfig

	viper.SetConfigFile(configPath)
	viper.SetEnvPrefix("VQS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return domain.Config{}, err
	}
	if err := viper.Unmarshal(&config); err != nil {
		return domain.Config{}, err
	}

	return config, nil
}

// overridePort replaces the port of a listen address, keeping its host part.
func overridePort(address, port string) string {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}

// initOTELTracer initializes the OTEL tracer
// and wires it up with the Sentry exporter.
func initOTELTracer(hostName string) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatalf("stdouttrace.New: %v", err)
	}

	resource, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(hostName),
		),
	)
	if err != nil {
		log.Fatalf("resource.New: %v", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
		sdktrace.WithSpanProcessor(sentryotel.NewSentrySpanProcessor()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(sentryotel.NewSentryPropagator())
}
