// Command sign prints the x-api-signature a bot sends with its API key.
//
//	sign -secret <api_secret> [-data all]
//
// Without -secret the secret is read from the first line of stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/internal/services/api_key"
)

func main() {
	secret := flag.String("secret", "", "API secret issued with the key")
	data := flag.String("data", "all", "payload to sign")
	flag.Parse()

	if *secret == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			logrus.Fatalf("Failed to read secret from stdin: %v", err)
		}
		*secret = strings.TrimSpace(line)
	}
	if *secret == "" {
		logrus.Fatal("secret must not be empty")
	}

	fmt.Println(api_key.Sign(*secret, *data))
}
