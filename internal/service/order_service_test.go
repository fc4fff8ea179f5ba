package service

import (
	"errors"
	"testing"

	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// fakeOrderRepo 是 OrderRepository 的内存实现。
type fakeOrderRepo struct {
	orders map[uint]*model.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*model.Order), nextID: 1}
}

func (f *fakeOrderRepo) Create(order *model.Order) error {
	order.ID = f.nextID
	f.nextID++
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) Update(order *model.Order) error {
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(id uint) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) FindByUserID(userID uint, offset, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) FindWithPagination(status string, offset, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

// fakeNotificationRepo 只记录写入的通知。
type fakeNotificationRepo struct {
	created []model.Notification
	err     error
}

func (f *fakeNotificationRepo) Create(n *model.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(userID uint, offset, limit int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) CountUnread(userID uint) (int64, error) { return 0, nil }

func (f *fakeNotificationRepo) MarkRead(userID, notificationID uint) error { return nil }

func (f *fakeNotificationRepo) MarkAllRead(userID uint) error { return nil }

func TestOrderUpdateStatusNotifiesMember(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	notifRepo := &fakeNotificationRepo{}
	svc := NewOrderService(orderRepo, notifRepo)

	order, err := svc.Create(42, "品牌重塑", "完整 VI 升级", 500000)
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("新订单状态应为 pending: %s", order.Status)
	}

	updated, err := svc.UpdateStatus(order.ID, model.OrderStatusInProgress)
	if err != nil {
		t.Fatalf("推进状态失败: %v", err)
	}
	if updated.Status != model.OrderStatusInProgress {
		t.Errorf("状态未更新: %s", updated.Status)
	}
	if len(notifRepo.created) != 1 {
		t.Fatalf("应产生 1 条通知，实际 %d", len(notifRepo.created))
	}
	n := notifRepo.created[0]
	if n.UserID != 42 || n.Kind != model.NotificationKindOrder {
		t.Errorf("通知归属不符: %+v", n)
	}
}

func TestOrderUpdateStatusRejectsInvalid(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo, &fakeNotificationRepo{})

	order, _ := svc.Create(1, "海报设计", "", 0)
	if _, err := svc.UpdateStatus(order.ID, "shipped"); err == nil {
		t.Error("非法状态应被拒绝")
	}
}

func TestOrderUpdateStatusSurvivesNotificationFailure(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	notifRepo := &fakeNotificationRepo{err: errors.New("db down")}
	svc := NewOrderService(orderRepo, notifRepo)

	order, _ := svc.Create(1, "官网改版", "", 0)
	updated, err := svc.UpdateStatus(order.ID, model.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("通知失败不应影响状态变更: %v", err)
	}
	if updated.Status != model.OrderStatusDelivered {
		t.Errorf("状态未更新: %s", updated.Status)
	}
}

func TestOrderGetForUserHidesOthers(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo, &fakeNotificationRepo{})

	order, _ := svc.Create(1, "画册排版", "", 0)
	if _, err := svc.GetForUser(2, order.ID); err == nil {
		t.Error("他人订单应不可见")
	}
	if _, err := svc.GetForUser(1, order.ID); err != nil {
		t.Errorf("本人订单应可见: %v", err)
	}
}
