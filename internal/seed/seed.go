// Package seed builds the starter household chore list used when storage is
// empty or the list is reset.
package seed

import (
	"time"

	"github.com/google/uuid"

	"choretracker/internal/models"
	"choretracker/internal/recurrence"
)

// Anchors pick the day of the current half-month or month on which seeded
// biweekly and monthly tasks first come due.
type Anchors struct {
	BiweeklyFirst  int `toml:"biweekly_first"`  // 1..15
	BiweeklySecond int `toml:"biweekly_second"` // 16..31
	MonthlyFirst   int `toml:"monthly_first"`   // 1..15
	MonthlySecond  int `toml:"monthly_second"`  // 16..31
}

// DefaultAnchors returns the anchors used when none are configured.
func DefaultAnchors() Anchors {
	return Anchors{
		BiweeklyFirst:  10,
		BiweeklySecond: 20,
		MonthlyFirst:   15,
		MonthlySecond:  28,
	}
}

// Clamp forces each anchor into its half of the month.
func (a Anchors) Clamp() Anchors {
	return Anchors{
		BiweeklyFirst:  clamp(a.BiweeklyFirst, 1, 15),
		BiweeklySecond: clamp(a.BiweeklySecond, 16, 31),
		MonthlyFirst:   clamp(a.MonthlyFirst, 1, 15),
		MonthlySecond:  clamp(a.MonthlySecond, 16, 31),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	daily = []string{
		"Arrumar a cama",
		"Varrer ou aspirar o chão",
		"Lavar e guardar as louças",
		"Limpar a pia e o fogão",
		"Passar o pano na cama",
		"Guardar o que estiver fora do lugar",
		"Retirar o lixo",
	}

	weekly = []struct {
		day    time.Weekday
		titles []string
	}{
		{time.Monday, []string{
			"Trocar e lavar roupas de cama",
			"Aspirar tapetes e estofados",
			"Limpeza de superfícies (mesas, bancadas, prateleiras)",
			"Higienizar vaso sanitário, pia e box",
		}},
		{time.Tuesday, []string{
			"Organizar o guarda-roupa",
			"Passar pano",
			"Lavar as roupas",
			"Fazer lista de compras",
		}},
		{time.Wednesday, []string{
			"Limpar eletrodomésticos",
			"Passar pano húmido nas superfícies",
			"Limpar janelas",
			"Limpar espelhos",
		}},
		{time.Thursday, []string{
			"Lavar toalhas e panos de prato",
			"Limpar a máquina de lavar",
			"Limpar a área de serviço",
		}},
		{time.Friday, []string{
			"Lavar o banheiro",
			"Limpar portas, maçanetas e interruptores",
			"Passar pano húmido em rodapés",
			"Limpar varanda ou quintal",
		}},
	}

	biweekly = []string{
		"Trocar todas as roupas de cama e fronhas.",
		"Lavar capas de almofadas e cortinas leves.",
		"Limpar rodapés e cantos com pano úmido.",
		"Higienizar lixeiras (cozinha e banheiros).",
		"Limpar ventiladores e filtros simples de ar-condicionado.",
		"Desinfetar maçanetas, interruptores e controles remotos.",
		"Higienizar brinquedos, objetos de uso frequente e tapetes pequenos.",
		"Organizar e checar despensa por prazo de validade.",
	}

	monthly = []string{
		"Limpeza profunda de tapetes e carpetes (aspirar com força e, se possível, lavar a seco ou com máquina).",
		"Limpar estofados com aspirador ou produto específico.",
		"Lavar cortinas pesadas.",
		"Limpar geladeira por dentro e remover alimentos vencidos; limpar borrachas.",
		"Limpeza profunda do banheiro: rejuntes, box, ralos e desincrustação se necessário.",
		"Limpar coifa, exaustor e filtros do fogão.",
		"Limpar dentro de armários e gavetas (cozinha e banheiros) e reorganizar.",
		"Limpar paredes e rodapés mais altos, trocar lâmpadas queimadas.",
		"Limpeza externa de janela e varandas; varrer quintal e recolher folhas.",
	}
)

// Generate returns the starter list as of now. Daily and weekly tasks are
// scheduled with the recurrence engine. Biweekly and monthly tasks are
// pinned to the anchor day of the current half-month or month, which may
// already have passed.
func Generate(now time.Time, anchors Anchors) []models.Task {
	anchors = anchors.Clamp()
	firstHalf := now.Day() <= 15

	tasks := make([]models.Task, 0, 40)

	for _, title := range daily {
		tasks = append(tasks, newTask(title, models.RecurrenceDaily, nil, recurrence.NextDueDate(models.RecurrenceDaily, now, nil), now))
	}

	for _, w := range weekly {
		for _, title := range w.titles {
			wd := models.WeekdayPtr(w.day)
			next := recurrence.NextDueDate(models.RecurrenceWeekly, now, wd)
			tasks = append(tasks, newTask(title, models.RecurrenceWeekly, wd, next, now))
		}
	}

	biDay := anchors.BiweeklySecond
	if firstHalf {
		biDay = anchors.BiweeklyFirst
	}
	for _, title := range biweekly {
		tasks = append(tasks, newTask(title, models.RecurrenceBiweekly, nil, anchorDate(now, biDay), now))
	}

	moDay := anchors.MonthlySecond
	if firstHalf {
		moDay = anchors.MonthlyFirst
	}
	for _, title := range monthly {
		tasks = append(tasks, newTask(title, models.RecurrenceMonthly, nil, anchorDate(now, moDay), now))
	}

	return tasks
}

func newTask(title string, kind models.Recurrence, wd *time.Weekday, next, now time.Time) models.Task {
	return models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Recurrence:  kind,
		Weekday:     wd,
		Active:      true,
		NextDueDate: &next,
		CreatedAt:   now,
	}
}

// anchorDate is midnight on day of now's month, moved back to the last day
// when the month is shorter.
func anchorDate(now time.Time, day int) time.Time {
	y, m, _ := now.Date()
	if last := time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location()).Day(); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, now.Location())
}
