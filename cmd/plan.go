package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cavendish02/AI-Factory-Robots/app"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

var (
	planPickup  []int
	planDropoff []int
	planUrgency string
	planWeight  float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a single assignment cycle for one task and print the plan",
	RunE:  plan,
}

func init() {
	planCmd.Flags().IntSliceVar(&planPickup, "pickup", nil, "pickup cell as x,y (defaults to the first source)")
	planCmd.Flags().IntSliceVar(&planDropoff, "dropoff", nil, "dropoff cell as x,y (defaults to the first destination)")
	planCmd.Flags().StringVar(&planUrgency, "urgency", "normal", "task urgency: normal, urgent or emergency")
	planCmd.Flags().Float64Var(&planWeight, "weight", 1, "item weight in kg")
	rootCmd.AddCommand(planCmd)
}

func plan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close() //nolint:errcheck

	pickup := svc.Grid.Sources()[0]
	dropoff := svc.Grid.Destinations()[0]
	if len(planPickup) == 2 {
		pickup = model.Cell{X: planPickup[0], Y: planPickup[1]}
	}
	if len(planDropoff) == 2 {
		dropoff = model.Cell{X: planDropoff[0], Y: planDropoff[1]}
	}
	urgency, err := parseUrgency(planUrgency)
	if err != nil {
		return err
	}

	task := model.NewTask(pickup, dropoff, urgency, planWeight, "parts")
	svc.Scheduler.AddTask(task)
	a := svc.Scheduler.AssignNext(0)
	if a == nil {
		return fmt.Errorf("no assignment made: %s", task.Status)
	}

	fmt.Printf("task %s -> robot %s (score %.3f)\n", a.Task.ID, a.Robot.ID, a.Score)
	fmt.Printf("route cost %.0f, %d turns, %d segments\n",
		a.Metrics.Cost, a.Metrics.Turns, a.Metrics.StraightSegments)
	for _, c := range a.Route {
		fmt.Printf("  (%d,%d)\n", c.X, c.Y)
	}
	return nil
}

func parseUrgency(s string) (model.TaskUrgency, error) {
	switch s {
	case "normal":
		return model.UrgencyNormal, nil
	case "urgent":
		return model.UrgencyUrgent, nil
	case "emergency":
		return model.UrgencyEmergency, nil
	}
	return model.UrgencyNormal, fmt.Errorf("unknown urgency %q", s)
}
