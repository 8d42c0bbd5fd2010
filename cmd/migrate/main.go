package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"gocorretora/config"
	"gocorretora/internal/pkg/database"
)

// Uso: migrate [up|down|status|version|reset|up-to N|down-to N]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Usando apenas o ambiente do sistema: %v", err)
	}
	flag.Parse()

	dsn, err := config.DatabaseURL()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	db, err := database.NewPostgresDB(dsn)
	if err != nil {
		log.Fatalf("goose: falha ao conectar ao banco: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("goose: falha ao fechar a conexão: %v", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // padrão quando nenhum comando é informado
	}

	command := arguments[0]
	if err := database.Migrate(db, command, arguments[1:]...); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("goose %s: sucesso\n", command)
}
