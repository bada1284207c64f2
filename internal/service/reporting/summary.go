package reporting

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// FormatHerdSummary renders a herd report as a WhatsApp message.
func FormatHerdSummary(report models.HerdReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Herd report (%s): %d managed animals of %d recorded.\n", report.AsOf.Format(dateLayout), report.ManagedAnimals, report.TotalAnimals)
	for _, category := range models.AllCategories() {
		if n := report.CategoryCounts[string(category)]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", category.Label(), n)
		}
	}

	fmt.Fprintf(&b, "Ready to wean: %d. Ready for service: %d. Growth alerts: %d.",
		len(report.ReadyToWean), len(report.ReadyToServe), len(report.GrowthAlerts))

	if report.GDP.Count > 0 {
		fmt.Fprintf(&b, "\nAverage daily gain %.0f g/day over %d young animals (%d poor, %d outstanding).",
			report.GDP.Mean, report.GDP.Count, report.GDP.Poor, report.GDP.Outstanding)
	}

	return b.String()
}

// FormatReadyLists renders the weaning and service lists.
func FormatReadyLists(report models.HerdReport) string {
	return fmt.Sprintf("Ready to wean (%d): %s\nReady for service (%d): %s\nGrowth alerts (%d): %s",
		len(report.ReadyToWean), joinOrNone(report.ReadyToWean),
		len(report.ReadyToServe), joinOrNone(report.ReadyToServe),
		len(report.GrowthAlerts), joinOrNone(report.GrowthAlerts))
}

// FormatAnimal renders the growth view of one animal.
func FormatAnimal(view AnimalView) string {
	var b strings.Builder
	g := view.Growth

	fmt.Fprintf(&b, "%s: %s, %s.\n", view.Animal.ID, view.Label, view.Age)
	if g.CurrentWeight > 0 {
		fmt.Fprintf(&b, "Weight %.1f kg (%s)", g.CurrentWeight, g.CurrentWeightDate.Format(dateLayout))
		if g.TargetWeight > 0 {
			fmt.Fprintf(&b, ", target %.1f kg, %d%% (%s)", g.TargetWeight, g.Score, g.Band)
		}
		b.WriteString(".\n")
	} else {
		b.WriteString("No weight recorded.\n")
	}
	if view.GDP != 0 {
		fmt.Fprintf(&b, "Daily gain %.0f g/day.\n", view.GDP)
	}

	m := g.Milestones
	fmt.Fprintf(&b, "Milestones: weaning %s, 90d %s, 180d %s, 270d %s, service %s.", m.Weaning, m.D90, m.D180, m.D270, m.Service)

	if g.IsReadyForWeaning {
		b.WriteString("\nReady to wean.")
	}
	if g.IsReadyForService {
		b.WriteString("\nReady for service.")
	}
	return b.String()
}

// FormatLactations renders the lactation history of one doe.
func FormatLactations(view LactationView) string {
	if len(view.Cycles) == 0 {
		return fmt.Sprintf("%s has no recorded parturitions.", view.AnimalID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d lactations.", view.AnimalID, len(view.Cycles))
	for _, c := range view.Cycles {
		fmt.Fprintf(&b, "\n#%d from %s (%s): avg %.2f kg, peak %.2f kg at DEL %d, %d weighings, %d days in milk.",
			c.Number, c.ParturitionDate.Format(dateLayout), c.Status, c.AverageKg, c.Peak.Kg, c.Peak.DEL, c.WeighingsInCycle, c.DaysInMilk)
	}
	if len(view.Intervals) > 0 {
		parts := make([]string, len(view.Intervals))
		for i, d := range view.Intervals {
			parts[i] = fmt.Sprintf("%d", d)
		}
		fmt.Fprintf(&b, "\nKidding intervals (days): %s.", strings.Join(parts, ", "))
	}
	for _, w := range view.Warnings {
		fmt.Fprintf(&b, "\nCheck: %s.", w)
	}
	return b.String()
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
