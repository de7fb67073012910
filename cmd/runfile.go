package cmd

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// runfile models the optional YAML run manifest. It can supply the host and
// command lists as well as connection and output options; explicit CLI flags
// always take precedence over runfile values.
type runfile struct {
	Name            string   `yaml:"name" validate:"required"`
	Description     string   `yaml:"description"`
	Platform        string   `yaml:"platform"`
	Transport       string   `yaml:"transport" validate:"omitempty,oneof=ssh standard system telnet"`
	Port            int      `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Hosts           []string `yaml:"hosts" validate:"omitempty,min=1,dive,required"`
	Commands        []string `yaml:"commands" validate:"omitempty,min=1,dive,required"`
	Save            bool     `yaml:"save"`
	SeparateOutput  bool     `yaml:"separate_output"`
	OutputDirectory string   `yaml:"output_directory"`
}

var validate = validator.New()

// loadRunfile reads and validates a YAML runfile.
func loadRunfile(path string) (*runfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read runfile: %w", err)
	}
	rf := &runfile{}
	if err := yaml.Unmarshal(b, rf); err != nil {
		return nil, fmt.Errorf("parse runfile: %w", err)
	}
	if err := validate.Struct(rf); err != nil {
		return nil, fmt.Errorf("invalid runfile: %w", err)
	}
	return rf, nil
}

// applyRunfile copies runfile options into the global configuration for every
// flag the user did not set explicitly. Host and command lists are handled
// separately in resolveHosts/resolveCommands.
func applyRunfile(rf *runfile, flags *pflag.FlagSet) {
	if rf == nil {
		return
	}
	if rf.Platform != "" && !flags.Changed("platform") {
		cfgPlatform = rf.Platform
	}
	if rf.Transport != "" && !flags.Changed("transport") {
		cfgTransport = rf.Transport
	}
	if rf.Port != 0 && !flags.Changed("port") {
		cfgPort = rf.Port
	}
	if rf.Save && !flags.Changed("save") {
		cfgSave = true
	}
	if rf.SeparateOutput && !flags.Changed("separate-output") {
		cfgSeparate = true
	}
	if rf.OutputDirectory != "" && !flags.Changed("output-directory") {
		cfgOutputDir = rf.OutputDirectory
	}
}
