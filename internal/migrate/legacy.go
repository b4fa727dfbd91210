// ABOUTME: Decoders for the legacy browser data shapes (Portuguese field names).
// ABOUTME: Converts legacy records, config, plans and check-ins to models.
package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// legacyNumber accepts JSON numbers, numeric strings, empty strings and null.
type legacyNumber struct {
	Value *float64
}

func (n *legacyNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		n.Value = &f
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.Value = &f
	return nil
}

func (n legacyNumber) intPtr() *int {
	if n.Value == nil {
		return nil
	}
	v := int(*n.Value)
	return &v
}

type legacyRecord struct {
	Data       string       `json:"data"`
	Peso       legacyNumber `json:"peso"`
	Cintura    legacyNumber `json:"cintura"`
	Agua       legacyNumber `json:"agua"`
	Sono       legacyNumber `json:"sono"`
	Notas      *string      `json:"notas"`
	FotoFrente *string      `json:"fotoFrente"`
	FotoLado   *string      `json:"fotoLado"`
	Timestamp  legacyNumber `json:"timestamp"`
}

type legacyConfig struct {
	Nome            *string      `json:"nome"`
	PesoInicial     legacyNumber `json:"pesoInicial"`
	MetaPeso        legacyNumber `json:"metaPeso"`
	PrazoMeta       *string      `json:"prazoMeta"`
	ReminderEnabled *bool        `json:"reminderEnabled"`
	ReminderTime    *string      `json:"reminderTime"`
	Theme           *string      `json:"theme"`
}

type legacyExercise struct {
	ID         string       `json:"id"`
	Nome       string       `json:"nome"`
	Series     legacyNumber `json:"series"`
	Repeticoes string       `json:"repeticoes"`
	Descanso   legacyNumber `json:"descanso"`
	Carga      *string      `json:"carga"`
	Imagem     *string      `json:"imagem"`
}

type legacyWorkout struct {
	ID         string           `json:"id"`
	Nome       string           `json:"nome"`
	Descricao  *string          `json:"descricao"`
	DiasSemana []string         `json:"diasSemana"`
	Ativo      *bool            `json:"ativo"`
	Exercicios []legacyExercise `json:"exercicios"`
	CriadoEm   string           `json:"criadoEm"`
}

type legacyCheckIn struct {
	Data       string       `json:"data"`
	TreinoID   string       `json:"treinoId"`
	Concluido  *bool        `json:"concluido"`
	Duracao    legacyNumber `json:"duracao"`
	Observacao *string      `json:"observacao"`
	Timestamp  legacyNumber `json:"timestamp"`
}

var legacyDays = map[string]time.Weekday{
	"dom": time.Sunday,
	"seg": time.Monday,
	"ter": time.Tuesday,
	"qua": time.Wednesday,
	"qui": time.Thursday,
	"sex": time.Friday,
	"sáb": time.Saturday,
	"sab": time.Saturday,
}

func parseLegacyDay(s string) (time.Weekday, bool) {
	if d, ok := legacyDays[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, true
	}
	d, err := models.ParseWeekday(s)
	return d, err == nil
}

// legacyPlanID maps a legacy string id onto a stable UUID so repeated
// migrations and check-in references agree.
func legacyPlanID(id string) uuid.UUID {
	if u, err := uuid.Parse(id); err == nil {
		return u
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("fittrack:workout:"+id))
}

func legacyExerciseID(planID, id string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("fittrack:exercise:"+planID+":"+id))
}

func millis(n legacyNumber) time.Time {
	if n.Value == nil || *n.Value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(*n.Value)).UTC()
}

func decodeList[T any](raw string) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeObject(raw string, v any) error {
	return json.Unmarshal([]byte(raw), v)
}

// toRecord converts a legacy record. Photo fields are copied as-is; inline
// payloads are extracted afterwards.
func (lr legacyRecord) toRecord() (*models.Record, error) {
	date, err := models.ParseDate(lr.Data)
	if err != nil {
		return nil, err
	}
	if lr.Peso.Value == nil {
		return nil, fmt.Errorf("record %s has no weight", lr.Data)
	}
	r := models.NewRecord(date, *lr.Peso.Value)
	r.Waist = lr.Cintura.Value
	r.Water = lr.Agua.Value
	r.Sleep = lr.Sono.Value
	if lr.Notas != nil && strings.TrimSpace(*lr.Notas) != "" {
		r.Note = lr.Notas
	}
	if lr.FotoFrente != nil && *lr.FotoFrente != "" {
		r.FrontPhotoRef = lr.FotoFrente
	}
	if lr.FotoLado != nil && *lr.FotoLado != "" {
		r.SidePhotoRef = lr.FotoLado
	}
	if ts := millis(lr.Timestamp); !ts.IsZero() {
		r.Timestamp = ts
	}
	return r, nil
}

// apply overlays the legacy config on s.
func (lc legacyConfig) apply(s models.Settings) models.Settings {
	if lc.Nome != nil && strings.TrimSpace(*lc.Nome) != "" {
		s.Name = strings.TrimSpace(*lc.Nome)
	}
	if lc.PesoInicial.Value != nil {
		s.InitialWeight = *lc.PesoInicial.Value
	}
	if lc.MetaPeso.Value != nil {
		s.TargetWeight = *lc.MetaPeso.Value
	}
	if lc.PrazoMeta != nil {
		if d, err := models.ParseDate(*lc.PrazoMeta); err == nil {
			s.Deadline = &d
		}
	}
	if lc.ReminderEnabled != nil {
		s.ReminderEnabled = *lc.ReminderEnabled
	}
	if lc.ReminderTime != nil && *lc.ReminderTime != "" {
		s.ReminderTime = *lc.ReminderTime
	}
	if lc.Theme != nil && models.IsValidTheme(*lc.Theme) {
		s.Theme = models.Theme(*lc.Theme)
	}
	return s
}

func (lw legacyWorkout) toPlan() (*models.WorkoutPlan, error) {
	name := strings.TrimSpace(lw.Nome)
	if name == "" {
		return nil, fmt.Errorf("workout %q has no name", lw.ID)
	}

	var days []time.Weekday
	for _, tag := range lw.DiasSemana {
		if d, ok := parseLegacyDay(tag); ok {
			days = append(days, d)
		}
	}

	p := models.NewWorkoutPlan(name, days...)
	p.ID = legacyPlanID(lw.ID)
	if lw.Descricao != nil && strings.TrimSpace(*lw.Descricao) != "" {
		p.Description = lw.Descricao
	}
	if lw.Ativo != nil {
		p.IsActive = *lw.Ativo
	}
	if created, err := models.ParseDate(lw.CriadoEm); err == nil {
		p.CreatedAt = created
	}

	for i, le := range lw.Exercicios {
		if strings.TrimSpace(le.Nome) == "" {
			continue
		}
		e := models.NewExercise(strings.TrimSpace(le.Nome))
		exID := le.ID
		if exID == "" {
			exID = strconv.Itoa(i)
		}
		e.ID = legacyExerciseID(lw.ID, exID)
		if v := le.Series.intPtr(); v != nil && *v > 0 {
			e.SetCount = *v
		}
		if le.Repeticoes != "" {
			e.RepRange = le.Repeticoes
		}
		if v := le.Descanso.intPtr(); v != nil && *v >= 0 {
			e.RestSeconds = *v
		}
		if le.Carga != nil && *le.Carga != "" {
			e.Load = le.Carga
		}
		if le.Imagem != nil && *le.Imagem != "" {
			e.ImageRef = le.Imagem
		}
		p.Exercises = append(p.Exercises, e)
	}
	return p, nil
}

func (lc legacyCheckIn) toCheckIn() (*models.CheckIn, error) {
	date, err := models.ParseDate(lc.Data)
	if err != nil {
		return nil, err
	}
	if lc.TreinoID == "" {
		return nil, fmt.Errorf("check-in %s has no workout", lc.Data)
	}
	c := models.NewCheckIn(date, legacyPlanID(lc.TreinoID))
	if lc.Concluido != nil {
		c.Completed = *lc.Concluido
	}
	c.DurationMinutes = lc.Duracao.intPtr()
	if lc.Observacao != nil && *lc.Observacao != "" {
		c.Note = lc.Observacao
	}
	if ts := millis(lc.Timestamp); !ts.IsZero() {
		c.Timestamp = ts
	}
	return c, nil
}
