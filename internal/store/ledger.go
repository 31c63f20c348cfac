package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msituguard/msituguard/internal/models"
	"github.com/msituguard/msituguard/internal/rewards"
)

var (
	ErrPlantingNotFound    = errors.New("tree planting not found")
	ErrReportNotFound      = errors.New("report not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInsufficientBalance = errors.New("insufficient carbon balance")
	ErrInvalidTransaction  = errors.New("invalid carbon transaction")
)

// AwardResult reports what a verification granted. AwardedNow is false when
// the entity had already been awarded and the verification was a no-op.
type AwardResult struct {
	AwardedNow bool
	Points     int64
	Carbon     float64
	ValueKES   float64
	Badges     []string
}

func (s *Store) CreateTreePlanting(userID, countyID, speciesID int64, treeCount int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO tree_plantings (user_id, county_id, species_id, tree_count, status)
		VALUES (?, ?, ?, ?, 'planned')
	`, userID, countyID, speciesID, treeCount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) MarkPlanted(plantingID int64) error {
	res, err := s.db.Exec(`
		UPDATE tree_plantings SET status = 'planted', planted_at = ?
		WHERE id = ? AND status = 'planned'
	`, time.Now().UTC(), plantingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var status string
		err := s.db.QueryRow(`SELECT status FROM tree_plantings WHERE id = ?`, plantingID).Scan(&status)
		if err == sql.ErrNoRows {
			return ErrPlantingNotFound
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: planted from %q", ErrInvalidTransition, status)
	}
	return nil
}

// VerifyTreePlanting moves a planting to verified and awards points and
// carbon exactly once. The status change, ledger rows, balance update, and
// awarded flag all commit in one transaction.
func (s *Store) VerifyTreePlanting(plantingID int64) (*AwardResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p models.TreePlanting
	err = tx.QueryRow(`
		SELECT id, user_id, tree_count, status, awarded
		FROM tree_plantings WHERE id = ?
	`, plantingID).Scan(&p.ID, &p.UserID, &p.TreeCount, &p.Status, &p.Awarded)
	if err == sql.ErrNoRows {
		return nil, ErrPlantingNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Status == "planned" {
		return nil, fmt.Errorf("%w: verified from %q", ErrInvalidTransition, p.Status)
	}

	if p.Awarded {
		badges, err := s.badgesForUser(tx, p.UserID)
		if err != nil {
			return nil, err
		}
		return &AwardResult{AwardedNow: false, Badges: badges}, nil
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(`
		UPDATE tree_plantings SET status = 'verified', verified_at = ?, awarded = TRUE
		WHERE id = ?
	`, now, plantingID); err != nil {
		return nil, err
	}

	points := int64(p.TreeCount) * rewards.PointsPerTree
	carbon := float64(p.TreeCount) * rewards.CarbonPerTree
	valueKES := rewards.CarbonValueKES(carbon)

	if err := insertLedgerEntry(tx, p.UserID, "points", float64(points), sql.NullFloat64{}, "tree_planting", plantingID,
		fmt.Sprintf("Verified planting of %d trees", p.TreeCount)); err != nil {
		return nil, err
	}
	if err := insertLedgerEntry(tx, p.UserID, "carbon", carbon, sql.NullFloat64{Float64: valueKES, Valid: true},
		"tree_planting", plantingID, fmt.Sprintf("Carbon credits for %d trees", p.TreeCount)); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`
		INSERT INTO user_balances (user_id, points, carbon_balance, carbon_earned, estimated_value_kes, trees_verified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			points = points + excluded.points,
			carbon_balance = carbon_balance + excluded.carbon_balance,
			carbon_earned = carbon_earned + excluded.carbon_earned,
			estimated_value_kes = (carbon_balance + excluded.carbon_balance) * ?,
			trees_verified = trees_verified + excluded.trees_verified
	`, p.UserID, points, carbon, carbon, valueKES, p.TreeCount, rewards.KESPerTonne); err != nil {
		return nil, err
	}

	badges, err := s.refreshBadges(tx, p.UserID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &AwardResult{
		AwardedNow: true,
		Points:     points,
		Carbon:     carbon,
		ValueKES:   valueKES,
		Badges:     badges,
	}, nil
}

func (s *Store) CreateReport(userID, countyID int64, category, description string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO environmental_reports (user_id, county_id, category, description, status)
		VALUES (?, ?, ?, ?, 'new')
	`, userID, countyID, category, description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// VerifyReport awards the fixed report bounty once. Like plantings, a second
// verification succeeds without granting anything.
func (s *Store) VerifyReport(reportID int64) (*AwardResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var r models.EnvironmentalReport
	err = tx.QueryRow(`
		SELECT id, user_id, status, awarded FROM environmental_reports WHERE id = ?
	`, reportID).Scan(&r.ID, &r.UserID, &r.Status, &r.Awarded)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.Awarded {
		badges, err := s.badgesForUser(tx, r.UserID)
		if err != nil {
			return nil, err
		}
		return &AwardResult{AwardedNow: false, Badges: badges}, nil
	}

	if _, err := tx.Exec(`
		UPDATE environmental_reports SET status = 'verified', awarded = TRUE WHERE id = ?
	`, reportID); err != nil {
		return nil, err
	}

	carbon := rewards.ReportCarbon
	valueKES := rewards.CarbonValueKES(carbon)

	if err := insertLedgerEntry(tx, r.UserID, "points", rewards.ReportPoints, sql.NullFloat64{},
		"report", reportID, "Verified environmental report"); err != nil {
		return nil, err
	}
	if err := insertLedgerEntry(tx, r.UserID, "carbon", carbon, sql.NullFloat64{Float64: valueKES, Valid: true},
		"report", reportID, "Carbon credit for verified report"); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`
		INSERT INTO user_balances (user_id, points, carbon_balance, carbon_earned, estimated_value_kes, trees_verified)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(user_id) DO UPDATE SET
			points = points + excluded.points,
			carbon_balance = carbon_balance + excluded.carbon_balance,
			carbon_earned = carbon_earned + excluded.carbon_earned,
			estimated_value_kes = (carbon_balance + excluded.carbon_balance) * ?
	`, r.UserID, rewards.ReportPoints, carbon, carbon, valueKES, rewards.KESPerTonne); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &AwardResult{
		AwardedNow: true,
		Points:     rewards.ReportPoints,
		Carbon:     carbon,
		ValueKES:   valueKES,
	}, nil
}

func (s *Store) ResolveReport(reportID int64) error {
	res, err := s.db.Exec(`
		UPDATE environmental_reports SET status = 'resolved'
		WHERE id = ? AND status = 'verified'
	`, reportID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var status string
		err := s.db.QueryRow(`SELECT status FROM environmental_reports WHERE id = ?`, reportID).Scan(&status)
		if err == sql.ErrNoRows {
			return ErrReportNotFound
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: resolved from %q", ErrInvalidTransition, status)
	}
	return nil
}

// CarbonTransact debits carbon from the user's balance for a sell or fund
// transaction. Fails closed when the balance cannot cover the amount.
func (s *Store) CarbonTransact(userID int64, kind string, amount float64) (*models.CarbonTransaction, error) {
	if kind != "sell" && kind != "fund" {
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidTransaction, kind)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var balance float64
	err = tx.QueryRow(`SELECT carbon_balance FROM user_balances WHERE user_id = ?`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return nil, ErrInsufficientBalance
	}
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	valueKES := rewards.CarbonValueKES(amount)

	var project sql.NullString
	if kind == "fund" {
		project = sql.NullString{String: rewards.ProjectFor(userID), Valid: true}
	}

	res, err := tx.Exec(`
		INSERT INTO carbon_transactions (user_id, kind, amount, value_kes, project_name)
		VALUES (?, ?, ?, ?, ?)
	`, userID, kind, amount, valueKES, project)
	if err != nil {
		return nil, err
	}
	txID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := insertLedgerEntry(tx, userID, "carbon", -amount,
		sql.NullFloat64{Float64: -valueKES, Valid: true}, "marketplace", txID,
		fmt.Sprintf("Carbon %s of %.3f t", kind, amount)); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`
		UPDATE user_balances
		SET carbon_balance = carbon_balance - ?,
		    estimated_value_kes = (carbon_balance - ?) * ?
		WHERE user_id = ?
	`, amount, amount, rewards.KESPerTonne, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.CarbonTransaction{
		ID:          txID,
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		ValueKES:    valueKES,
		ProjectName: project,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (s *Store) GetUserBalance(userID int64) (*models.UserBalance, error) {
	row := s.db.QueryRow(`
		SELECT user_id, points, carbon_balance, carbon_earned, estimated_value_kes, badges
		FROM user_balances WHERE user_id = ?
	`, userID)

	var b models.UserBalance
	var badges string
	err := row.Scan(&b.UserID, &b.Points, &b.CarbonBalance, &b.CarbonEarned, &b.EstimatedValueKES, &badges)
	if err == sql.ErrNoRows {
		return &models.UserBalance{UserID: userID, Badges: []string{rewards.BadgeForTrees(0)}}, nil
	}
	if err != nil {
		return nil, err
	}
	if badges != "" {
		b.Badges = strings.Split(badges, ",")
	}
	return &b, nil
}

func (s *Store) GetLedgerEntries(userID int64, limit int) ([]models.LedgerEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, kind, amount, value_kes, ref_kind, ref_id, note, created_at
		FROM ledger_entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.ValueKES, &e.RefKind, &e.RefID, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetTreePlanting(plantingID int64) (*models.TreePlanting, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, county_id, species_id, tree_count, status, awarded, planted_at, verified_at, created_at
		FROM tree_plantings WHERE id = ?
	`, plantingID)

	var p models.TreePlanting
	err := row.Scan(&p.ID, &p.UserID, &p.CountyID, &p.SpeciesID, &p.TreeCount, &p.Status, &p.Awarded,
		&p.PlantedAt, &p.VerifiedAt, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPlantingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func insertLedgerEntry(tx *sql.Tx, userID int64, kind string, amount float64, valueKES sql.NullFloat64, refKind string, refID int64, note string) error {
	_, err := tx.Exec(`
		INSERT INTO ledger_entries (user_id, kind, amount, value_kes, ref_kind, ref_id, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, userID, kind, amount, valueKES, refKind, refID, note)
	return err
}

// refreshBadges folds the badges earned at the current verified tree total
// into the stored set and writes it back. Badges are never removed; a user
// keeps every tier ever reached.
func (s *Store) refreshBadges(tx *sql.Tx, userID int64) ([]string, error) {
	var trees int64
	var stored string
	if err := tx.QueryRow(`SELECT trees_verified, badges FROM user_balances WHERE user_id = ?`, userID).Scan(&trees, &stored); err != nil {
		return nil, err
	}

	var badges []string
	if stored != "" {
		badges = strings.Split(stored, ",")
	}
	for _, earned := range rewards.Badges(trees, true) {
		if !containsBadge(badges, earned) {
			badges = append(badges, earned)
		}
	}

	if _, err := tx.Exec(`UPDATE user_balances SET badges = ? WHERE user_id = ?`,
		strings.Join(badges, ","), userID); err != nil {
		return nil, err
	}
	return badges, nil
}

func containsBadge(badges []string, name string) bool {
	for _, b := range badges {
		if b == name {
			return true
		}
	}
	return false
}

func (s *Store) badgesForUser(tx *sql.Tx, userID int64) ([]string, error) {
	var badges string
	err := tx.QueryRow(`SELECT badges FROM user_balances WHERE user_id = ?`, userID).Scan(&badges)
	if err == sql.ErrNoRows || badges == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return strings.Split(badges, ","), nil
}
