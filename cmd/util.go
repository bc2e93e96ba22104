package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedType = errors.New("ERR unsupported request type")

type ServerOptions struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	WalEnabled bool   `yaml:"wal"`
	WalFile    string `yaml:"wal_file"`
}

// Read command line options, falling back to the config file and then to the
// defaults
func getServerOptions(args []string) (*ServerOptions, error) {
	var (
		host       string
		port       string
		portSr     string
		enableWal  bool
		walFile    string
		configFile string
	)

	fs := flag.NewFlagSet("memo", flag.ContinueOnError)
	fs.StringVar(&host, "host", "", "Host to bind the server to")
	fs.StringVar(&port, "port", "", "Port to run server")
	fs.StringVar(&portSr, "p", "", "Shorthand for port")
	fs.BoolVar(&enableWal, "wal", false, "Enable write ahead log")
	fs.StringVar(&walFile, "wal-file", "", "Path of the write ahead log")
	fs.StringVar(&configFile, "config", "", "Path of a YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	options := &ServerOptions{}
	if configFile != "" {
		if err := loadConfigFile(configFile, options); err != nil {
			return nil, err
		}
	}

	// Only flags given on the command line override the config file.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["p"] {
		options.Port = portSr
	}
	if set["port"] {
		options.Port = port
	}
	if set["host"] {
		options.Host = host
	}
	if set["wal-file"] {
		options.WalFile = walFile
	}
	if set["wal"] {
		options.WalEnabled = enableWal
	}

	if options.Host == "" {
		options.Host = DefaultHost
	}
	if options.Port == "" {
		options.Port = DefaultPort
	}
	if options.WalFile == "" {
		options.WalFile = WalName
	}

	return options, nil
}

func loadConfigFile(path string, options *ServerOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, options); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

// Convert a parsed request into command arguments. Arrays come from RESP
// clients, plain strings from inline commands.
func RequestArgs(req any) ([]string, error) {
	switch req := req.(type) {
	case string:
		return sanitize(req)
	case []string:
		return req, nil
	}

	return nil, ErrUnsupportedType
}

// Check if a given file path exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !errors.Is(err, os.ErrNotExist)
}
