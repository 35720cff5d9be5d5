package lifecycle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animal struct {
	id     string
	stage  Stage
	sex    Sex
	age    float64
	weight *float64
}

func (a animal) LifeStage() Stage     { return a.stage }
func (a animal) AgeInMonths() float64 { return a.age }
func (a animal) AnimalSex() Sex       { return a.sex }
func (a animal) LastWeight() (float64, bool) {
	if a.weight == nil {
		return 0, false
	}
	return *a.weight, true
}

func months(v float64) *float64 { return &v }

func TestPredict(t *testing.T) {
	tests := []struct {
		name  string
		stage Stage
		sex   Sex
		age   float64
		want  Transition
	}{
		{
			name: "lactante", stage: StageLactante, sex: SexFemale, age: 1,
			want: Transition{Current: StageLactante, Next: StageCria, MonthsRemaining: months(2)},
		},
		{
			name: "cria", stage: StageCria, sex: SexMale, age: 4.5,
			want: Transition{Current: StageCria, Next: StageCrecimiento, MonthsRemaining: months(1.5)},
		},
		{
			name: "crecimiento female", stage: StageCrecimiento, sex: SexFemale, age: 10,
			want: Transition{Current: StageCrecimiento, Next: StageVaca, MonthsRemaining: months(2)},
		},
		{
			name: "crecimiento male", stage: StageCrecimiento, sex: SexMale, age: 10,
			want: Transition{Current: StageCrecimiento, Next: StageToro, MonthsRemaining: months(2)},
		},
		{
			name: "crecimiento unknown sex", stage: StageCrecimiento, sex: Sex("X"), age: 7,
			want: Transition{Current: StageCrecimiento, Next: StageNone, MonthsRemaining: months(5)},
		},
		{
			name: "label not yet updated gives negative", stage: StageLactante, sex: SexFemale, age: 4,
			want: Transition{Current: StageLactante, Next: StageCria, MonthsRemaining: months(-1)},
		},
		{
			name: "vaca terminal", stage: StageVaca, sex: SexFemale, age: 30,
			want: Transition{Current: StageVaca, Next: StageNone},
		},
		{
			name: "toro terminal", stage: StageToro, sex: SexMale, age: 0,
			want: Transition{Current: StageToro, Next: StageNone},
		},
		{
			name: "unknown stage", stage: Stage("Adulto"), sex: SexMale, age: 40,
			want: Transition{Current: Stage("Adulto"), Next: StageNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Predict(tt.stage, tt.sex, tt.age)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Predict mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPredict_TerminalAnyAge(t *testing.T) {
	for _, age := range []float64{0, 12, 13.5, 99} {
		got := Predict(StageVaca, SexFemale, age)
		assert.Equal(t, StageNone, got.Next)
		assert.Nil(t, got.MonthsRemaining)
	}
}

func TestPlanTransitions(t *testing.T) {
	batch := []animal{
		{id: "vaca", stage: StageVaca, sex: SexFemale, age: 40},
		{id: "crec", stage: StageCrecimiento, sex: SexMale, age: 11},
		{id: "lact", stage: StageLactante, sex: SexFemale, age: 0.5},
		{id: "cria", stage: StageCria, sex: SexFemale, age: 5},
		{id: "toro", stage: StageToro, sex: SexMale, age: 20},
		{id: "late", stage: StageCria, sex: SexMale, age: 7},
	}

	plan := PlanTransitions(batch)
	require.Len(t, plan, 4)

	ids := make([]string, 0, len(plan))
	for _, c := range plan {
		ids = append(ids, c.Item.id)
	}
	// late: -1, cria: 1, crec: 1 (desempata etapa), lact: 2.5
	assert.Equal(t, []string{"late", "cria", "crec", "lact"}, ids)
	assert.Equal(t, StageToro, plan[2].Transition.Next)
}

func TestPlanTransitions_Empty(t *testing.T) {
	assert.Empty(t, PlanTransitions([]animal{{id: "v", stage: StageVaca}}))
	assert.Empty(t, PlanTransitions([]animal{{id: "x", stage: Stage("Novillo"), age: 3}}))
	assert.Empty(t, PlanTransitions[animal](nil))
}

func TestCompareRemaining_NilsLast(t *testing.T) {
	assert.Equal(t, 1, compareRemaining(nil, months(3)))
	assert.Equal(t, -1, compareRemaining(months(3), nil))
	assert.Equal(t, 0, compareRemaining(nil, nil))
	assert.Equal(t, -1, compareRemaining(months(-2), months(3)))
}
