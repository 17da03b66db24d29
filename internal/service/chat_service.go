package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
)

const maxMessageRunes = 1000

type ChatService struct {
	messages *mysql.MessageRepository
	orders   *mysql.OrderRepository
}

func NewChatService(messages *mysql.MessageRepository, orders *mysql.OrderRepository) *ChatService {
	return &ChatService{messages: messages, orders: orders}
}

// member 只有持有 PAID/SETTLED 订单的人能看和发消息
func (s *ChatService) member(ctx context.Context, bureauID, userID uint64) error {
	ok, err := s.orders.HasActiveOrder(ctx, bureauID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return pkg.ErrForbidden
	}
	return nil
}

func (s *ChatService) Send(ctx context.Context, bureauID, userID uint64, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageRunes {
		return nil, pkg.ErrInvalidParams
	}
	if err := s.member(ctx, bureauID, userID); err != nil {
		return nil, err
	}
	msg := &model.Message{
		BureauID: bureauID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List afterID 为上次拉到的最后一条消息 id，首次传 0
func (s *ChatService) List(ctx context.Context, bureauID, userID, afterID uint64, limit int) ([]model.Message, error) {
	if err := s.member(ctx, bureauID, userID); err != nil {
		return nil, err
	}
	return s.messages.ListAfter(ctx, bureauID, afterID, limit)
}
