// Command token emite un JWT para un dispositivo o un administrador.
//
//	go run ./cmd/token -subject cocina-pi -role scanner
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/home-inventory/pkg/config"
	"github.com/jhoicas/home-inventory/pkg/jwt"
)

func main() {
	subject := flag.String("subject", "", "identificador del dispositivo o usuario")
	role := flag.String("role", jwt.RoleScanner, "admin | scanner")
	minutes := flag.Int("exp", 0, "minutos de validez (0 = JWT_EXPIRATION)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración:", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}
	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-subject es obligatorio")
		os.Exit(2)
	}
	exp := *minutes
	if exp == 0 {
		exp = cfg.JWT.Expiration
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *subject, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
