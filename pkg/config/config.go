package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logging  LoggingConfig
	Keywords KeywordsConfig
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

// KeywordsConfig holds the relevance keyword sets. They live in
// configuration rather than code so the lists can be swapped without a
// rebuild.
type KeywordsConfig struct {
	// WebProducts matches vendor/product/CPE strings of web technologies.
	WebProducts []string
	// VulnClasses matches description text of web vulnerability classes.
	VulnClasses []string
	// GatedVulnClasses match only when a WebHints term also appears in
	// the description.
	GatedVulnClasses []string
	WebHints         []string
	// WebCWEs matches CWE identifiers assigned to the record.
	WebCWEs []string
}

func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/cvekb")
	}

	viper.SetEnvPrefix("CVEKB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.outputPath", "stderr")

	viper.SetDefault("keywords.webProducts", []string{
		"apache", "nginx", "iis", "tomcat", "jetty", "jboss", "websphere",
		"wordpress", "drupal", "joomla", "magento", "shopify",
		"django", "flask", "rails", "spring", "express", "fastapi",
		"react", "angular", "vue", "node.js", "php", "laravel",
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch",
		"docker", "kubernetes", "jenkins", "gitlab", "github",
	})

	viper.SetDefault("keywords.vulnClasses", []string{
		"cross-site scripting", "xss",
		"sql injection",
		"cross-site request forgery", "csrf",
		"server-side request forgery", "ssrf",
		"path traversal", "directory traversal",
		"xml external entity", "xxe",
		"open redirect",
		"command injection",
		"deserialization",
		"authentication bypass",
		"unrestricted file upload",
	})

	viper.SetDefault("keywords.gatedVulnClasses", []string{
		"remote code execution",
	})

	viper.SetDefault("keywords.webHints", []string{
		"http", "web", "server", "url", "request", "browser",
	})

	viper.SetDefault("keywords.webCWEs", []string{
		"CWE-79", "CWE-89", "CWE-22", "CWE-352", "CWE-78", "CWE-94",
		"CWE-287", "CWE-863", "CWE-434", "CWE-502", "CWE-611",
		"CWE-918", "CWE-200", "CWE-601",
	})
}
