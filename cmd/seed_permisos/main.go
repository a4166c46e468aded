// seed_permisos genera el script SQL idempotente que puebla el catálogo base
// de permisos (producto cartesiano acción × recurso).
//
// Uso: go run ./cmd/seed_permisos [ruta/salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_permisos.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var acciones = []string{"create", "read", "update", "delete"}

var recursos = []string{
	"empresas",
	"usuarios",
	"roles",
	"permisos",
	"roles_permisos",
}

func main() {
	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_permisos.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	var b strings.Builder
	b.WriteString("-- Catálogo base de permisos (generado por cmd/seed_permisos).\n")
	b.WriteString("-- Idempotente: el índice único (accion, recurso) descarta duplicados.\n\n")
	for _, recurso := range recursos {
		for _, accion := range acciones {
			fmt.Fprintf(&b,
				"INSERT INTO permisos (accion, recurso) VALUES ('%s', '%s') ON CONFLICT (accion, recurso) DO NOTHING;\n",
				accion, recurso,
			)
		}
		b.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s (%d permisos)\n", outPath, len(acciones)*len(recursos))
}
