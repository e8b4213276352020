package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Generates synthetic monthly electricity-usage CSV fixtures in the raw
// input schema: one reading per hour per day, with plausible device and
// temperature patterns.

type customer struct {
	id   string
	name string
}

type location struct {
	id         string
	address    string
	city       string
	state      string
	postalCode string
}

var names = []string{
	"Big Bird", "Cookie Monster", "Elmo", "Bert", "Ernie",
	"Oscar the Grouch", "Grover", "Count von Count", "Abby Cadabby", "Snuffleupagus",
}

var streets = []string{
	"Sesame Street", "Cookie Lane", "Rubber Duckie Road", "Count Avenue", "Alphabet Boulevard",
	"Numbers Way", "Friendship Circle", "Muppet Drive", "Rainbow Road", "Sunny Day Street",
}

var cities = []struct {
	city, state, postalPrefix string
}{
	{"New York", "NY", "100"},
	{"Los Angeles", "CA", "900"},
	{"Chicago", "IL", "606"},
	{"Houston", "TX", "770"},
	{"Phoenix", "AZ", "850"},
	{"Philadelphia", "PA", "191"},
	{"San Antonio", "TX", "782"},
	{"San Diego", "CA", "921"},
	{"Dallas", "TX", "752"},
	{"San Jose", "CA", "951"},
}

var header = []string{
	"customerId", "customerName", "locationId", "address", "city", "state", "postalCode",
	"timestamp", "kWh", "outsideTemp",
	"electricVehicleCharging", "hotWaterHeater", "poolPump", "heatPump",
}

func main() {
	year := flag.Int("year", 2024, "year to generate")
	month := flag.Int("month", 1, "month to generate (1-12)")
	count := flag.Int("customers", 1, "number of customers")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		cust := customer{
			id:   fmt.Sprintf("CUST-%03d", i+1),
			name: names[i%len(names)],
		}
		loc := randomLocation(rng, i)
		rows := generateMonth(rng, *year, *month, cust, loc)
		name := fmt.Sprintf("synthetic-electric-usage-data-%s-%04d-%02d.csv", cust.id, *year, *month)
		if err := writeCSV(filepath.Join(*outDir, name), rows); err != nil {
			log.Fatalf("genfixtures failed: %v", err)
		}
		fmt.Printf("wrote %s (%d rows)\n", name, len(rows))
	}
}

func randomLocation(rng *rand.Rand, index int) location {
	c := cities[rng.Intn(len(cities))]
	return location{
		id:         fmt.Sprintf("LOC-%03d", index+1),
		address:    fmt.Sprintf("%d %s", rng.Intn(9999)+1, streets[rng.Intn(len(streets))]),
		city:       c.city,
		state:      c.state,
		postalCode: fmt.Sprintf("%s%02d", c.postalPrefix, rng.Intn(100)),
	}
}

func generateMonth(rng *rand.Rand, year, month int, cust customer, loc location) [][]string {
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()

	const baseTemp = 8.0
	lastEvCharge := -2

	var rows [][]string
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		for hour := 0; hour < 24; hour++ {
			// Coldest before dawn, warmest mid-afternoon.
			dayVariation := math.Sin(float64(day)/31*math.Pi) * 3
			hourVariation := math.Sin(float64(hour-5)/24*math.Pi) * 5
			outsideTemp := round1(baseTemp + dayVariation + hourVariation)

			kwh := 0.2 + rng.Float64()*0.1
			evCharging := false
			hotWater := false
			poolPump := false
			heatPump := false

			// EV charges overnight every few days.
			if day-lastEvCharge >= 3 && hour >= 1 && hour <= 4 {
				evCharging = true
				kwh += 1.7 + rng.Float64()*0.2
				if hour == 1 {
					lastEvCharge = day
				}
			}
			if hour == 6 || hour == 19 || (weekend && hour == 10) {
				hotWater = true
				kwh += 1.2 + rng.Float64()*0.3
			}
			if hour >= 9 && hour <= 16 && outsideTemp > 12 {
				poolPump = true
				kwh += 0.3 + rng.Float64()*0.2
			}
			if outsideTemp < 12 || outsideTemp > 25 {
				heatPump = true
				kwh += 0.5 + rng.Float64()*0.3
			}
			if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 21) {
				kwh += 0.2 + rng.Float64()*0.2
			}
			if weekend && hour >= 9 && hour <= 21 {
				kwh += 0.2
			}

			timestamp := fmt.Sprintf("%04d-%02d-%02d %02d:00", year, month, day, hour)
			rows = append(rows, []string{
				cust.id, cust.name, loc.id, loc.address, loc.city, loc.state, loc.postalCode,
				timestamp,
				formatNumber(round1(kwh)),
				formatNumber(outsideTemp),
				strconv.FormatBool(evCharging),
				strconv.FormatBool(hotWater),
				strconv.FormatBool(poolPump),
				strconv.FormatBool(heatPump),
			})
		}
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
