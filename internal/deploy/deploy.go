// Package deploy renders the host artifacts needed to run the gateway as a
// supervised service: the systemd unit, its environment file and the
// firewall steps for the listen port.
package deploy

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"text/template"

	"gateway/internal/config"
)

// Options describe how the service is installed on a host.
type Options struct {
	ServiceName string
	Description string
	User        string
	Group       string
	WorkingDir  string
	Binary      string
	EnvFile     string
	// RestartSec is the delay before systemd restarts a failed process.
	RestartSec int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ServiceName: cfg.Deploy.ServiceName,
		Description: cfg.AppName,
		User:        cfg.Deploy.User,
		Group:       cfg.Deploy.Group,
		WorkingDir:  cfg.Deploy.WorkingDir,
		Binary:      cfg.Deploy.Binary,
		EnvFile:     cfg.Deploy.EnvFile,
		RestartSec:  5,
	}
}

// UnitFileName is the name the unit is installed under.
func (o Options) UnitFileName() string {
	return o.ServiceName + ".service"
}

var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description={{ .Description }}
After=network.target

[Service]
Type=simple
{{- if .User }}
User={{ .User }}
{{- end }}
{{- if .Group }}
Group={{ .Group }}
{{- end }}
WorkingDirectory={{ .WorkingDir }}
EnvironmentFile={{ .EnvFile }}
ExecStart={{ .Binary }} serve -c {{ .EnvFile }}
Restart=on-failure
RestartSec={{ .RestartSec }}

[Install]
WantedBy=multi-user.target
`))

// Unit renders the systemd unit for the service.
func Unit(opts Options) (string, error) {
	if opts.Description == "" {
		opts.Description = opts.ServiceName
	}
	if opts.RestartSec <= 0 {
		opts.RestartSec = 5
	}

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, opts); err != nil {
		return "", fmt.Errorf("could not render unit: %w", err)
	}

	return buf.String(), nil
}

// Placeholder replaces secrets in a rendered environment file.
const Placeholder = "<change-me>"

var envTemplate = template.Must(template.New("env").Parse(`APP_ENV={{ .Environment }}
HTTP_ADDR={{ .Addr }}
AZURE_OPENAI_ENDPOINT={{ .Endpoint }}
AZURE_OPENAI_API_KEY={{ .APIKey }}
AZURE_OPENAI_DEPLOYMENT={{ .Deployment }}
AZURE_OPENAI_API_VERSION={{ .APIVersion }}
CHATBOT_API_BASE_URL={{ .ChatbotBaseURL }}
CONVERSATION_STORE={{ .Store }}
`))

type envValues struct {
	Environment    string
	Addr           string
	Endpoint       string
	APIKey         string
	Deployment     string
	APIVersion     string
	ChatbotBaseURL string
	Store          string
}

// EnvFile renders the environment file read by the unit. The API key is
// replaced by Placeholder unless withSecrets is set. Empty values are
// rendered as placeholders too.
func EnvFile(cfg *config.Config, withSecrets bool) (string, error) {
	apiKey := Placeholder
	if withSecrets && cfg.AzureOpenAI.APIKey != "" {
		apiKey = cfg.AzureOpenAI.APIKey
	}

	values := envValues{
		Environment:    orPlaceholder(cfg.Environment),
		Addr:           orPlaceholder(cfg.HTTP.Addr),
		Endpoint:       orPlaceholder(cfg.AzureOpenAI.Endpoint),
		APIKey:         apiKey,
		Deployment:     orPlaceholder(cfg.AzureOpenAI.Deployment),
		APIVersion:     orPlaceholder(cfg.AzureOpenAI.APIVersion),
		ChatbotBaseURL: orPlaceholder(cfg.ChatbotAPI.BaseURL),
		Store:          orPlaceholder(cfg.Conversation.Store),
	}

	var buf bytes.Buffer
	if err := envTemplate.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("could not render env file: %w", err)
	}

	return buf.String(), nil
}

func orPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}

	return v
}

// Port extracts the TCP port from a listen address such as "0.0.0.0:20001".
func Port(addr string) (int, error) {
	_, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port in listen address %q", addr)
	}

	return port, nil
}

// FirewallCommands returns the shell steps that open port to TCP traffic and
// label it for HTTP under SELinux. A port already known to SELinux is
// modified rather than added.
func FirewallCommands(port int) []string {
	return []string{
		fmt.Sprintf("firewall-cmd --permanent --add-port=%d/tcp", port),
		"firewall-cmd --reload",
		fmt.Sprintf("semanage port -a -t http_port_t -p tcp %d || semanage port -m -t http_port_t -p tcp %d", port, port),
	}
}

// InstallCommands returns the systemctl steps run after the unit is copied
// into /etc/systemd/system.
func InstallCommands(opts Options) []string {
	return []string{
		"systemctl daemon-reload",
		"systemctl enable --now " + opts.UnitFileName(),
		"systemctl status " + opts.UnitFileName() + " --no-pager",
	}
}
