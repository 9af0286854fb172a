package i18n

import "github.com/osse101/LuckyWheel_Go/internal/domain"

type translation struct {
	en string
	vi string
}

// Message keys that are not domain error codes
const (
	KeyNetworkFailure = "network_failure"
	KeyYouWon         = "you_won"
	KeyPendingClaims  = "pending_claims"
	KeyClaimSent      = "claim_sent"
	KeyWheelTitle     = "wheel_title"
)

// messages is keyed by domain error code or one of the Key constants above
var messages = map[string]translation{
	domain.ErrCodeWheelPaused: {
		en: "The wheel is paused. Please wait for the host to reopen it.",
		vi: "Vòng quay đang tạm dừng. Vui lòng chờ host mở lại!",
	},
	domain.ErrCodeWheelNotStarted: {
		en: "The event has not started yet. Please come back later.",
		vi: "Sự kiện chưa bắt đầu. Vui lòng quay lại sau!",
	},
	domain.ErrCodeWheelEnded: {
		en: "The event has ended.",
		vi: "Sự kiện đã kết thúc!",
	},
	domain.ErrCodeOutsideWindow: {
		en: "The wheel is not open right now.",
		vi: "Vòng quay hiện không mở.",
	},
	domain.ErrCodeAlreadyPlayed: {
		en: "You have already spun this wheel. Each person gets one spin.",
		vi: "Bạn đã quay vòng này rồi! Mỗi người chỉ được quay 1 lần.",
	},
	domain.ErrCodeOutOfStock: {
		en: "All prizes have been given out.",
		vi: "Tất cả giải thưởng đã được trao hết.",
	},
	domain.ErrCodeWheelNotFound: {
		en: "No wheel exists with this code.",
		vi: "Không tìm thấy vòng quay với mã này.",
	},
	domain.ErrCodeStockContention: {
		en: "Too many people are spinning at once. Please try again.",
		vi: "Có quá nhiều người đang quay cùng lúc. Vui lòng thử lại.",
	},
	domain.ErrCodeSpinNotFound: {
		en: "Spin not found.",
		vi: "Không tìm thấy lượt quay.",
	},
	domain.ErrCodeProofAttached: {
		en: "A proof has already been submitted for this prize.",
		vi: "Giải thưởng này đã được gửi yêu cầu nhận.",
	},
	domain.ErrCodeInvalidStatus: {
		en: "This claim cannot be changed to that status.",
		vi: "Không thể cập nhật trạng thái này.",
	},
	domain.ErrCodeUploadFailure: {
		en: "The image could not be uploaded. Please try again.",
		vi: "Có lỗi khi tải ảnh lên. Vui lòng thử lại!",
	},
	domain.ErrCodeUnauthorized: {
		en: "Please sign in again.",
		vi: "Vui lòng đăng nhập lại.",
	},
	domain.ErrCodeInvalidInput: {
		en: "The request is invalid.",
		vi: "Yêu cầu không hợp lệ.",
	},
	domain.ErrCodeInternal: {
		en: "Something went wrong. Please try again.",
		vi: "Có lỗi xảy ra. Vui lòng thử lại.",
	},
	KeyNetworkFailure: {
		en: "Could not reach the server. Please check your connection.",
		vi: "Không kết nối được máy chủ. Vui lòng kiểm tra kết nối.",
	},
	KeyYouWon: {
		en: "You won %s!",
		vi: "Bạn đã trúng %s!",
	},
	KeyPendingClaims: {
		en: "You have %d unclaimed prize(s).",
		vi: "Bạn có %d giải thưởng chưa nhận.",
	},
	KeyClaimSent: {
		en: "Your claim has been sent.",
		vi: "Yêu cầu nhận thưởng của bạn đã được gửi.",
	},
	KeyWheelTitle: {
		en: "%s's wheel",
		vi: "Vòng quay của %s",
	},
}
