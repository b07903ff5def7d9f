package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/pkg/api"
)

func TestCreateExpense_Equal(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	carol := env.addFriend(t, "Carol")

	e := env.createExpense(t, &api.CreateExpenseRequest{
		Amount:       "90",
		PaidBy:       env.userID,
		Participants: equalShares(env.userID, bob, carol),
		Date:         "2026-05-01",
	})

	if e.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if e.SplitType != "equal" {
		t.Errorf("split type: expected 'equal', got '%s'", e.SplitType)
	}
	if e.Description != "Split with Bob, Carol" {
		t.Errorf("description: expected generated title, got '%s'", e.Description)
	}
	if e.Amount != "90.00" || e.Date != "2026-05-01" {
		t.Errorf("unexpected amount/date: %s %s", e.Amount, e.Date)
	}
	for _, p := range e.Participants {
		if p.Amount != "30.00" {
			t.Errorf("share of %s: expected 30.00, got %s", p.UserID, p.Amount)
		}
	}
}

func TestCreateExpense_Percentage(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")

	e := env.createExpense(t, &api.CreateExpenseRequest{
		Description: "Rent",
		Amount:      "1200",
		PaidBy:      env.userID,
		SplitType:   "percentage",
		Participants: []api.Share{
			{UserID: env.userID, Amount: "75"},
			{UserID: bob, Amount: "25"},
		},
	})

	if e.SplitType != "custom" {
		t.Errorf("percentage split should be stored as custom, got '%s'", e.SplitType)
	}
	if e.Participants[0].Amount != "900.00" || e.Participants[1].Amount != "300.00" {
		t.Errorf("unexpected shares: %+v", e.Participants)
	}
}

func TestCreateExpense_Rejected(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")

	tests := []struct {
		name string
		req  *api.CreateExpenseRequest
	}{
		{"no participants", &api.CreateExpenseRequest{Amount: "10", PaidBy: env.userID}},
		{"no payer", &api.CreateExpenseRequest{Amount: "10", Participants: equalShares(bob)}},
		{"zero amount", &api.CreateExpenseRequest{Amount: "0", PaidBy: env.userID, Participants: equalShares(bob)}},
		{"negative amount", &api.CreateExpenseRequest{Amount: "-5", PaidBy: env.userID, Participants: equalShares(bob)}},
		{"unknown participant", &api.CreateExpenseRequest{Amount: "10", PaidBy: env.userID, Participants: equalShares("stranger")}},
		{"unknown payer", &api.CreateExpenseRequest{Amount: "10", PaidBy: "stranger", Participants: equalShares(bob)}},
		{"unknown group", &api.CreateExpenseRequest{Amount: "10", PaidBy: env.userID, Participants: equalShares(bob), GroupID: "nope"}},
		{"payment split type", &api.CreateExpenseRequest{Amount: "10", PaidBy: env.userID, Participants: equalShares(bob), SplitType: "payment"}},
		{"bad date", &api.CreateExpenseRequest{Amount: "10", PaidBy: env.userID, Participants: equalShares(bob), Date: "01/05/2026"}},
		{"custom shares do not add up", &api.CreateExpenseRequest{
			Amount: "100", PaidBy: env.userID, SplitType: "custom",
			Participants: []api.Share{{UserID: env.userID, Amount: "10"}, {UserID: bob, Amount: "20"}},
		}},
		{"percentages do not add up", &api.CreateExpenseRequest{
			Amount: "100", PaidBy: env.userID, SplitType: "percentage",
			Participants: []api.Share{{UserID: env.userID, Amount: "50"}, {UserID: bob, Amount: "20"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestUpdateExpense(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	ctx := context.Background()

	e := env.createExpense(t, &api.CreateExpenseRequest{
		Description: "Taxi", Amount: "20", PaidBy: env.userID, Participants: equalShares(env.userID, bob),
	})

	resp, err := env.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ID: e.ID, Description: "Taxi home", Amount: "30", PaidBy: bob, Participants: equalShares(env.userID, bob),
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	if resp.Msg.Expense.ID != e.ID || resp.Msg.Expense.Amount != "30.00" || resp.Msg.Expense.PaidBy != bob {
		t.Errorf("update not applied: %+v", resp.Msg.Expense)
	}
	if resp.Msg.Expense.CreatedAt != e.CreatedAt {
		t.Errorf("CreatedAt changed: %d -> %d", e.CreatedAt, resp.Msg.Expense.CreatedAt)
	}

	_, err = env.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ID: "missing", Amount: "1", PaidBy: env.userID, Participants: equalShares(bob),
	}))
	expectCode(t, err, connect.CodeNotFound)

	pay, err := env.expenses.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		From: env.userID, To: bob, Amount: "15",
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	_, err = env.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ID: pay.Msg.Expense.ID, Amount: "20", PaidBy: env.userID, Participants: equalShares(bob),
	}))
	expectCode(t, err, connect.CodeFailedPrecondition)
}

func TestDeleteExpense(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	ctx := context.Background()

	e := env.createExpense(t, &api.CreateExpenseRequest{Amount: "20", PaidBy: env.userID, Participants: equalShares(bob)})

	if _, err := env.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ID: e.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	_, err := env.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ID: e.ID}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestListExpenses_Filters(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	carol := env.addFriend(t, "Carol")
	ctx := context.Background()

	group, err := env.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name: "Trip", Members: []string{env.userID, bob},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := group.Msg.Group.ID

	env.createExpense(t, &api.CreateExpenseRequest{Description: "Hotel", Amount: "200", PaidBy: env.userID,
		Participants: equalShares(env.userID, bob), GroupID: groupID, Date: "2026-01-03"})
	env.createExpense(t, &api.CreateExpenseRequest{Description: "Lunch", Amount: "30", PaidBy: carol,
		Participants: equalShares(env.userID, carol), Date: "2026-01-02"})
	env.createExpense(t, &api.CreateExpenseRequest{Description: "Cinema", Amount: "24", PaidBy: bob,
		Participants: equalShares(env.userID, bob, carol), Date: "2026-01-01"})

	tests := []struct {
		name string
		req  *api.ListExpensesRequest
		want []string
	}{
		{"all, newest first", &api.ListExpensesRequest{}, []string{"Hotel", "Lunch", "Cinema"}},
		{"by group", &api.ListExpensesRequest{GroupID: groupID}, []string{"Hotel"}},
		{"by friend", &api.ListExpensesRequest{FriendID: carol}, []string{"Lunch", "Cinema"}},
		{"by group and friend", &api.ListExpensesRequest{GroupID: groupID, FriendID: carol}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.expenses.ListExpenses(ctx, connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("ListExpenses failed: %v", err)
			}
			var got []string
			for _, e := range resp.Msg.Expenses {
				got = append(got, e.Description)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestRecordPayment(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	ctx := context.Background()

	resp, err := env.expenses.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		From: bob, To: env.userID, Amount: "12,50", Notes: "cash",
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	e := resp.Msg.Expense
	if e.Description != "Payment: Bob paid you" {
		t.Errorf("description: got '%s'", e.Description)
	}
	if !e.IsPayment || e.SplitType != "payment" || e.PaidBy != bob || e.Amount != "12.50" {
		t.Errorf("unexpected payment record: %+v", e)
	}
	if len(e.Participants) != 2 || e.Participants[1].UserID != env.userID || e.Participants[1].Amount != "12.50" {
		t.Errorf("unexpected participants: %+v", e.Participants)
	}
	if e.Date == "" {
		t.Error("expected date to default to today")
	}

	_, err = env.expenses.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		From: bob, To: bob, Amount: "5",
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.expenses.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		From: "stranger", To: env.userID, Amount: "5",
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}
