package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

type seedReminder struct {
	name         string
	instructions string
}

type seedMedication struct {
	name        string
	description string
	dosage      string
	isCurrent   bool
	reminders   []seedReminder
}

var medications = []seedMedication{
	{
		name:        "Oxycontin",
		description: "Oxycodone belongs to a class of drugs known as opioid analgesics and is used to help relieve severe ongoing pain.",
		dosage:      "1 tablet every 12 hours",
		isCurrent:   false,
		reminders: []seedReminder{
			{"Morning", "Take only one a tablet at a time if your dose is for more than one tablet. Avoid breaking, crushing, chewing, or dissolving tablets to avoid accidental overdose."},
			{"Evening", "Take only one a tablet at a time if your dose is for more than one tablet. Avoid breaking, crushing, chewing, or dissolving tablets to avoid accidental overdose."},
		},
	},
	{
		name:        "Methadone",
		description: "This medication belongs to a class of drugs known as opioid analgesics. It is used to treat opioid use disorder by preventing withdrawal symptoms.",
		dosage:      "1 bottle daily",
		isCurrent:   true,
		reminders: []seedReminder{
			{"Methadone Morning", "Take by mouth with or without food on a regular schedule as directed by your doctor."},
		},
	},
	{
		name:        "Clonazepam",
		description: "This medication belongs to a class of drugs called benzodiazepines and is used to treat panic attacks, as well as preventing and controlling seizures.",
		dosage:      "2 or 3 times daily",
		isCurrent:   false,
		reminders: []seedReminder{
			{"Clonazepam Morning", "Take this medication by mouth as directed by your doctor."},
			{"Clonazepam Afternoon", "Take this medication by mouth as directed by your doctor."},
			{"Clonazepam Evening", "Take this medication by mouth as directed by your doctor."},
		},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	defaultDSN := os.Getenv("DATABASE_URL")
	dsn := flag.String("dsn", defaultDSN, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Cannot ping DB:", err)
	}

	seed(db)
}

func seed(db *sql.DB) {
	email := "cigana@gmail.com"
	password := "quimbanda7"

	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	var userID int64
	err := db.QueryRow(`
		INSERT INTO users (user_name, email_address, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (email_address) DO UPDATE SET password = excluded.password
		RETURNING id
	`, "pombagira", email, string(hashed)).Scan(&userID)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	for _, m := range medications {
		var medicationID int64
		err := db.QueryRow(`
			INSERT INTO medications (user_id, name, description, dosage, is_current)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, name) DO UPDATE SET
				description = excluded.description,
				dosage = excluded.dosage,
				is_current = excluded.is_current
			RETURNING id
		`, userID, m.name, m.description, m.dosage, m.isCurrent).Scan(&medicationID)
		if err != nil {
			log.Fatalf("Failed to seed medication %s: %v", m.name, err)
		}

		for _, r := range m.reminders {
			_, err := db.Exec(`
				INSERT INTO reminders (user_id, medication_id, name, instructions)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (user_id, name) DO UPDATE SET
					medication_id = excluded.medication_id,
					instructions = excluded.instructions
			`, userID, medicationID, r.name, r.instructions)
			if err != nil {
				log.Fatalf("Failed to seed reminder %s: %v", r.name, err)
			}
		}
	}

	fmt.Printf("✅ Seeded!\n   User: %s\n   Pass: %s\n", email, password)
}
