package integration

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealcoach/backend/internal/database"
	"github.com/mealcoach/backend/internal/models"
	"github.com/mealcoach/backend/internal/planner"
	"github.com/mealcoach/backend/internal/service"
)

// setupPostgres starts a disposable PostgreSQL container and migrates the
// full schema into it.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postpass",
				"POSTGRES_DB":       "mealcoach_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=postpass dbname=mealcoach_test sslmode=disable",
		host, mappedPort.Port())

	var db *gorm.DB
	require.Eventually(t, func() bool {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		return err == nil
	}, 30*time.Second, time.Second)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestPersistenceAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	db := setupPostgres(t)

	auth := service.NewAuthService(db, "integration-secret-0123")
	token, err := auth.Register(ctx, "mealfan", "password123", "홍길동")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	plan := &planner.FinalizedPlan{
		PlanMeta: planner.PlanMeta{
			GoalNote:      "사용자 목표를 반영한 추천",
			TotalCalories: 2100,
			MacrosTotal:   planner.Macros{ProteinG: 120, CarbG: 230, FatG: 55},
			MacrosRatio:   planner.MacroRatio{ProteinPct: 24, CarbPct: 47, FatPct: 29},
		},
	}
	for _, c := range []*planner.MealContainer{&plan.Breakfast, &plan.Lunch, &plan.Dinner} {
		c.Title = "연어 구이와 미소된장국"
		for i := 0; i < planner.ItemsPerMeal; i++ {
			c.Items = append(c.Items, planner.MealItem{
				Name:        fmt.Sprintf("요리 %d", i),
				Calories:    140,
				Macros:      planner.Macros{ProteinG: 8, CarbG: 15, FatG: 4},
				PrepTimeMin: 20,
			})
		}
	}
	plan.Dinner.Items[0].Ingredients = []planner.Ingredient{
		{Name: "연어", Amount: "150 g"},
		{Name: "미소된장", Amount: "1큰술"},
	}

	recs := service.NewRecommendationService(db)
	saved, err := recs.SaveRecommendation(ctx, claims.UserID, plan)
	require.NoError(t, err)
	assert.Len(t, saved.MealKits, 15)

	history, err := recs.ListRecommendations(ctx, claims.UserID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Recipe)
	assert.Len(t, history[0].Recipe.Ingredients, 2)

	var kitCount int64
	require.NoError(t, db.Model(&models.MealKit{}).Count(&kitCount).Error)
	assert.EqualValues(t, 15, kitCount)
}
