package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
	"marketdash-api/pkg/calendar"
)

type CalendarLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCalendarLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CalendarLogic {
	return &CalendarLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Calendar lists economic events through whichever calendar adapter the
// factory selects for this request's credentials.
func (l *CalendarLogic) Calendar(req *types.CalendarReq) (*types.CalendarResp, error) {
	user := l.svcCtx.CredStore.Resolve(l.ctx, req.UserId)
	source, err := l.svcCtx.Factory.Calendar(req.Adapter, user)
	if err != nil {
		return nil, err
	}

	dateFrom, err := parseTimeParam(req.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseTimeParam(req.DateTo)
	if err != nil {
		return nil, err
	}
	params := calendar.Params{
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Countries: splitList(req.Countries),
		Impact:    calendar.Impact(req.Impact),
	}

	fetch := func(ctx context.Context) ([]calendar.Event, error) {
		return source.FetchEvents(ctx, params)
	}

	var events []calendar.Event
	if user.IsZero() {
		signature := strings.Join([]string{req.DateFrom, req.DateTo, req.Countries, req.Impact}, "|")
		key := cachekit.CalendarKey(source.Name(), signature)
		events, err = cachekit.FetchWith(l.ctx, l.svcCtx.Cache, key, cachekit.CalendarTTL(l.svcCtx.TTL), fetch)
	} else {
		events, err = fetch(l.ctx)
	}
	if err != nil {
		return nil, err
	}

	if req.Impact != "" {
		filtered := events[:0:0]
		for _, event := range events {
			if event.Impact == calendar.Impact(req.Impact) {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	return &types.CalendarResp{
		Success: true,
		Data:    events,
		Count:   len(events),
		Adapter: source.Name(),
	}, nil
}
