package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/flashdeck/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      dev token validity, minutes
//	-k string   OpenAI API key
//	-u string   OpenAI base URL (empty for the default endpoint)
//	-m string   OpenAI model name
//	-i string   Razorpay key id
//	-x string   Razorpay key secret
//	-l int      free plan deck limit
//	-n int      flashcards per generation run
//	-dev        enable the local token issuer endpoint
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-s", "-t", "-k", "-u", "-m", "-i", "-x", "-l", "-n", "-dev"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "dev token validity (in minutes)")

	fs.StringVar(&config.OpenAIAPIKey, "k", config.OpenAIAPIKey, "OpenAI API key")
	fs.StringVar(&config.OpenAIBaseURL, "u", config.OpenAIBaseURL, "OpenAI base URL")
	fs.StringVar(&config.OpenAIModel, "m", config.OpenAIModel, "OpenAI model")
	fs.StringVar(&config.RazorpayKeyID, "i", config.RazorpayKeyID, "Razorpay key id")
	fs.StringVar(&config.RazorpayKeySecret, "x", config.RazorpayKeySecret, "Razorpay key secret")
	fs.IntVar(&config.FreeDeckLimit, "l", config.FreeDeckLimit, "free plan deck limit")
	fs.IntVar(&config.CardsPerGeneration, "n", config.CardsPerGeneration, "flashcards per generation run")
	fs.BoolVar(&config.EnableDevAuth, "dev", config.EnableDevAuth, "enable local token issuer")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
